package booking

import (
	"errors"
	"time"

	"rentalhub/internal/domain/user"
)

var (
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidAction     = errors.New("invalid booking action")
	ErrInvalidTransition = errors.New("no such transition from current status")
	ErrUnauthorized      = errors.New("actor role not allowed for this action")
	ErrTemporalGuard     = errors.New("rental period has already started")
)

type edge struct {
	next  Status
	roles map[user.Role]bool
	// futureStartRoles lists roles that may only take the edge while the
	// rental has not started yet.
	futureStartRoles map[user.Role]bool
}

// The single source of truth for the booking lifecycle. Authorization is
// data here, not per-handler conditionals.
var transitions = map[Status]map[Action]edge{
	StatusPending: {
		ActionConfirm: {next: StatusConfirmed, roles: roles(user.RoleAdmin)},
		ActionCancel:  {next: StatusCancelled, roles: roles(user.RoleCustomer, user.RoleAdmin)},
	},
	StatusConfirmed: {
		ActionActivate: {next: StatusActive, roles: roles(user.RoleAdmin)},
		ActionCancel: {
			next:             StatusCancelled,
			roles:            roles(user.RoleCustomer, user.RoleAdmin),
			futureStartRoles: roles(user.RoleCustomer),
		},
	},
	StatusActive: {
		ActionComplete: {next: StatusCompleted, roles: roles(user.RoleAdmin)},
		ActionCancel:   {next: StatusCancelled, roles: roles(user.RoleAdmin)},
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

func roles(rs ...user.Role) map[user.Role]bool {
	m := make(map[user.Role]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}

// Transition decides whether role may apply action to a booking in the
// current status, and returns the resulting status. Pure: persisting the new
// status and recording the activity entry is the caller's job.
func Transition(current Status, action Action, role user.Role, startDate, now time.Time) (Status, error) {
	e, ok := transitions[current][action]
	if !ok {
		return "", ErrInvalidTransition
	}
	if !e.roles[role] {
		return "", ErrUnauthorized
	}
	if e.futureStartRoles[role] && !startDate.After(now) {
		return "", ErrTemporalGuard
	}
	return e.next, nil
}

// AllowedActions lists the actions role may take from the given status,
// ignoring temporal guards.
func AllowedActions(current Status, role user.Role) []Action {
	var out []Action
	for _, a := range []Action{ActionConfirm, ActionActivate, ActionComplete, ActionCancel} {
		if e, ok := transitions[current][a]; ok && e.roles[role] {
			out = append(out, a)
		}
	}
	return out
}
