package converter

import (
	"table-booking/internal/domain/emergency"
	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra/query"
	"table-booking/internal/pkg/pgconv"
)

func NotificationLogFromRow(row query.NotificationLog) (notification.LogEntry, error) {
	channel, err := notification.ParseChannel(row.Channel)
	if err != nil {
		return notification.LogEntry{}, err
	}
	reason, err := notification.ParseReason(row.Reason)
	if err != nil {
		return notification.LogEntry{}, err
	}
	status, err := notification.ParseStatus(row.Status)
	if err != nil {
		return notification.LogEntry{}, err
	}
	return notification.LogEntry{
		ID:          row.ID,
		RecipientID: row.RecipientID,
		Channel:     channel,
		Reason:      reason,
		SubjectKey:  row.SubjectKey,
		Description: row.Description,
		Status:      status,
		Attempts:    int(row.Attempts),
		LastError:   pgconv.StringPtrFromPgtype(row.LastError),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func RecipientFromRow(row query.RecipientRow) notification.Recipient {
	r := notification.Recipient{
		ID:             row.ID,
		Name:           row.Name,
		Email:          row.Email,
		TelegramChatID: row.TelegramChatID,
		DepartmentID:   pgconv.UUIDPtrFromPgtype(row.DepartmentID),
	}
	if row.NotificationChannel.Valid {
		// unknown channels fall back to "no preference"
		if c, err := notification.ParseChannel(row.NotificationChannel.String); err == nil {
			r.PreferredChannel = c
		}
	}
	return r
}

func TableSpecFromRow(row query.TableRow) reservation.TableSpec {
	return reservation.TableSpec{
		ID:        row.ID,
		ManagerID: pgconv.UUIDPtrFromPgtype(row.ManagerID),
		Capacity:  int(row.Capacity),
	}
}

func EmergencyToRow(w *emergency.Window) query.Emergency {
	return query.Emergency{
		ID:          w.ID(),
		Name:        w.Name(),
		Description: w.Description(),
		StartAt:     pgconv.TimeToPgtype(w.Interval().Start()),
		EndAt:       pgconv.TimeToPgtype(w.Interval().End()),
		CreatedBy:   pgconv.UUIDPtrToPgtype(w.CreatedBy()),
		CreatedAt:   pgconv.TimeToPgtype(w.CreatedAt()),
	}
}

func EmergencyFromRow(row query.Emergency) (*emergency.Window, error) {
	return emergency.Reconstruct(
		row.ID, row.Name, row.Description,
		pgconv.TimeFromPgtype(row.StartAt), pgconv.TimeFromPgtype(row.EndAt),
		pgconv.UUIDPtrFromPgtype(row.CreatedBy), pgconv.TimeFromPgtype(row.CreatedAt),
	)
}
