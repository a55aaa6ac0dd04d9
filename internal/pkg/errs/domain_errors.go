package errs

import "errors"

// Sentinels shared by the command and query usecase layers
var (
	// Lookup errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrTableNotFound       = errors.New("table not found")
	ErrEmergencyNotFound   = errors.New("emergency not found")
	ErrRecipientNotFound   = errors.New("recipient not found")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrQueueUnavailable        = errors.New("notification queue unavailable")
)
