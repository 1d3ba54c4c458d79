package domain

import (
	"errors"
	"time"
)

// AuthOutcome is the result of a single login attempt.
type AuthOutcome string

const (
	OutcomeSuccess         AuthOutcome = "success"
	OutcomeUserNotFound    AuthOutcome = "user_not_found"
	OutcomeInvalidPassword AuthOutcome = "invalid_password"
	OutcomeInvalidInput    AuthOutcome = "invalid_input"
	OutcomeError           AuthOutcome = "error"
)

// AuthEvent records a login attempt for the audit trail.
type AuthEvent struct {
	Login    string
	Outcome  AuthOutcome
	UserID   string // empty unless the login resolved to a user
	RemoteIP string
	At       time.Time
}

// OutcomeOf classifies err as returned by the authenticator.
func OutcomeOf(err error) AuthOutcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrUserNotFound):
		return OutcomeUserNotFound
	case errors.Is(err, ErrInvalidPassword):
		return OutcomeInvalidPassword
	case errors.Is(err, ErrInvalidCredentials):
		return OutcomeInvalidInput
	default:
		return OutcomeError
	}
}
