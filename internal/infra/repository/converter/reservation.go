package converter

import (
	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra/query"
	"table-booking/internal/pkg/pgconv"
)

func ReservationToRow(res *reservation.Reservation) query.Reservation {
	s := res.Snapshot()
	return query.Reservation{
		ID:                 s.ID,
		TableID:            s.TableID,
		CustomerID:         s.CustomerID,
		ManagerID:          pgconv.UUIDPtrToPgtype(s.ManagerID),
		StartAt:            pgconv.TimeToPgtype(s.StartAt),
		EndAt:              pgconv.TimeToPgtype(s.EndAt),
		GuestCount:         int32(s.GuestCount), // #nosec G115 -- guest count validated against table capacity
		Services:           s.Services,
		Status:             s.Status.String(),
		CancellationReason: pgconv.StringPtrToPgtype(s.CancellationReason),
		RatingEmailSentAt:  pgconv.TimePtrToPgtype(s.RatingEmailSentAt),
		CreatedAt:          pgconv.TimeToPgtype(s.CreatedAt),
		UpdatedAt:          pgconv.TimeToPgtype(s.UpdatedAt),
		DeletedAt:          pgconv.TimePtrToPgtype(s.DeletedAt),
	}
}

func ReservationFromRow(row query.Reservation) (*reservation.Reservation, error) {
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	return reservation.Reconstruct(reservation.Snapshot{
		ID:                 row.ID,
		TableID:            row.TableID,
		CustomerID:         row.CustomerID,
		ManagerID:          pgconv.UUIDPtrFromPgtype(row.ManagerID),
		StartAt:            pgconv.TimeFromPgtype(row.StartAt),
		EndAt:              pgconv.TimeFromPgtype(row.EndAt),
		GuestCount:         int(row.GuestCount),
		Services:           row.Services,
		Status:             status,
		CancellationReason: pgconv.StringPtrFromPgtype(row.CancellationReason),
		RatingEmailSentAt:  pgconv.TimePtrFromPgtype(row.RatingEmailSentAt),
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:          pgconv.TimeFromPgtype(row.UpdatedAt),
		DeletedAt:          pgconv.TimePtrFromPgtype(row.DeletedAt),
	})
}

func ReservationsFromRows(rows []query.Reservation) ([]*reservation.Reservation, error) {
	out := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		r, err := ReservationFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func AuditRecordToRow(rec reservation.AuditRecord) query.ReservationAuditEntry {
	return query.ReservationAuditEntry{
		ReservationID: rec.ReservationID,
		Status:        rec.Status.String(),
		ActorID:       pgconv.UUIDPtrToPgtype(rec.ActorID),
		RecordedAt:    pgconv.TimeToPgtype(rec.RecordedAt),
	}
}

func AuditEntryFromRow(row query.ReservationAuditEntry) (reservation.AuditEntry, error) {
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return reservation.AuditEntry{}, err
	}
	return reservation.AuditEntry{
		ReservationID: row.ReservationID,
		Sequence:      int(row.Sequence),
		Status:        status,
		ActorID:       pgconv.UUIDPtrFromPgtype(row.ActorID),
		RecordedAt:    pgconv.TimeFromPgtype(row.RecordedAt),
	}, nil
}
