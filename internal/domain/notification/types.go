package notification

import "errors"

var (
	ErrInvalidChannel    = errors.New("invalid notification channel")
	ErrInvalidReason     = errors.New("invalid notification reason")
	ErrMissingSubjectKey = errors.New("notification subject key is required")
	ErrDeliveryFailed    = errors.New("notification delivery failed")
	ErrNoChannel         = errors.New("recipient has no usable notification channel")
)

type Channel string

const (
	ChannelMail     Channel = "mail"
	ChannelTelegram Channel = "telegram"
)

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	return c == ChannelMail || c == ChannelTelegram
}

// ParseChannel accepts an empty string as "no preference".
func ParseChannel(s string) (Channel, error) {
	if s == "" {
		return "", nil
	}
	c := Channel(s)
	if !c.IsValid() {
		return "", ErrInvalidChannel
	}
	return c, nil
}

// Reason codes are stored verbatim in the notification log.
type Reason string

const (
	ReasonEmergencyClosure   Reason = "Emergency Closure"
	ReasonRatingRequest      Reason = "Rating Request"
	ReasonManagerDailyReport Reason = "Manager Daily Report"
)

func (r Reason) String() string {
	return string(r)
}

func ParseReason(s string) (Reason, error) {
	r := Reason(s)
	switch r {
	case ReasonEmergencyClosure, ReasonRatingRequest, ReasonManagerDailyReport:
		return r, nil
	default:
		return "", ErrInvalidReason
	}
}

type Status string

const (
	StatusAttempting Status = "attempting"
	StatusSent       Status = "sent"
	StatusFailed     Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusAttempting, StatusSent, StatusFailed:
		return st, nil
	default:
		return "", errors.New("invalid notification status")
	}
}

type Result string

const (
	ResultSent    Result = "sent"
	ResultFailed  Result = "failed"
	ResultSkipped Result = "skipped"
)
