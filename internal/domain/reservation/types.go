package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusInService Status = "in_service"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusInService, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsBlocking reports whether a reservation in this status holds its table.
func (s Status) IsBlocking() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInService:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func BlockingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusInService}
}

type Event string

const (
	EventConfirm         Event = "confirm"
	EventReject          Event = "reject"
	EventCancel          Event = "cancel"
	EventStartService    Event = "start_service"
	EventCompleteService Event = "complete_service"
	EventEmergencyCancel Event = "emergency_cancel"
)

func (e Event) String() string {
	return string(e)
}

func ParseEvent(s string) (Event, error) {
	ev := Event(s)
	if _, ok := transitionRules[ev]; !ok {
		return "", ErrInvalidEvent
	}
	return ev, nil
}
