package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"
)

//go:generate mockgen -source=report.go -destination=mocks/report_mock.go -package=mocks

type ReportSummary struct {
	Day      string
	Managers int
	Sent     int
	Failed   int
	Skipped  int
}

type ReportCommands interface {
	SendDailyReports(ctx context.Context, day time.Time) (ReportSummary, error)
}

type reportUseCaseImpl struct {
	uow        shared.UnitOfWork
	dispatcher NotificationCommands
	loc        *time.Location
}

func NewReportUseCase(uow shared.UnitOfWork, dispatcher NotificationCommands, loc *time.Location) ReportCommands {
	if loc == nil {
		loc = time.UTC
	}
	return &reportUseCaseImpl{uow: uow, dispatcher: dispatcher, loc: loc}
}

// SendDailyReports sends every manager the status breakdown of the day's
// reservations at their tables. One manager's failure never stops the batch.
func (uc *reportUseCaseImpl) SendDailyReports(ctx context.Context, day time.Time) (ReportSummary, error) {
	start, end := clock.DayBounds(day, uc.loc)
	interval, err := reservation.NewInterval(start, end)
	if err != nil {
		return ReportSummary{}, err
	}
	summary := ReportSummary{Day: start.Format(time.DateOnly)}

	var managers []notification.Recipient
	err = uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ferr error
		managers, ferr = tx.Recipients().ListManagers(ctx)
		return repoErr(ferr, errs.ErrRecipientNotFound)
	})
	if err != nil {
		return summary, err
	}
	summary.Managers = len(managers)

	for _, m := range managers {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		payload, perr := uc.buildPayload(ctx, m, interval, summary.Day)
		if perr != nil {
			slog.Warn("daily report skipped", "manager_id", m.ID.String(), "error", perr.Error())
			summary.Failed++
			continue
		}
		outcome, derr := uc.dispatcher.Dispatch(ctx, m, "", notification.ReasonManagerDailyReport, payload)
		if derr != nil {
			slog.Warn("daily report dispatch failed", "manager_id", m.ID.String(), "error", derr.Error())
			summary.Failed++
			continue
		}
		switch outcome.Result {
		case notification.ResultSent:
			summary.Sent++
		case notification.ResultFailed:
			summary.Failed++
		default:
			summary.Skipped++
		}
	}

	slog.Info("daily reports sent",
		"day", summary.Day,
		"managers", summary.Managers,
		"sent", summary.Sent,
		"failed", summary.Failed,
		"skipped", summary.Skipped)
	return summary, nil
}

func (uc *reportUseCaseImpl) buildPayload(ctx context.Context, m notification.Recipient, interval reservation.Interval, day string) (notification.Payload, error) {
	var list []*reservation.Reservation
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ferr error
		list, ferr = tx.Reservations().ListByManager(ctx, m.ID, interval)
		return repoErr(ferr, errs.ErrReservationNotFound)
	})
	if err != nil {
		return notification.Payload{}, err
	}

	counts := map[reservation.Status]int{}
	guests := 0
	for _, r := range list {
		counts[r.Status()]++
		guests += r.GuestCount().Int()
	}
	data := map[string]string{
		"day":    day,
		"total":  strconv.Itoa(len(list)),
		"guests": strconv.Itoa(guests),
	}
	for _, s := range []reservation.Status{
		reservation.StatusPending, reservation.StatusConfirmed, reservation.StatusInService,
		reservation.StatusCompleted, reservation.StatusCancelled, reservation.StatusRejected,
	} {
		data[s.String()] = strconv.Itoa(counts[s])
	}

	return notification.Payload{
		SubjectKey:  "report:" + day,
		Description: fmt.Sprintf("Daily report for %s: %d reservations", day, len(list)),
		Data:        data,
	}, nil
}
