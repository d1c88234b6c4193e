package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition exists from s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionActivate Action = "activate"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	switch a {
	case ActionConfirm, ActionActivate, ActionComplete, ActionCancel:
		return true
	default:
		return false
	}
}

func NewAction(s string) (Action, error) {
	action := Action(s)
	if !action.IsValid() {
		return "", ErrInvalidAction
	}
	return action, nil
}
