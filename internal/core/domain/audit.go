package domain

import "time"

// LoginOutcome is the result recorded for a login attempt.
type LoginOutcome string

const (
	LoginSucceeded LoginOutcome = "succeeded"
	LoginRejected  LoginOutcome = "rejected"
	LoginErrored   LoginOutcome = "error"
)

// AuthEvent is an audit record of a single login attempt.
type AuthEvent struct {
	ID          string
	Identity    string
	Role        Role
	Outcome     LoginOutcome
	PrincipalID int64 // zero unless the attempt succeeded
	OccurredAt  time.Time
}
