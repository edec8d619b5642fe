package domain

import "time"

// AuthEventKind labels an entry in the authentication audit trail.
type AuthEventKind string

const (
	AuthEventSignUp       AuthEventKind = "signup"
	AuthEventSignIn       AuthEventKind = "signin"
	AuthEventSignInDenied AuthEventKind = "signin_denied"
)

// AuthEvent records a single authentication outcome. Events are persisted
// asynchronously and best-effort; losing one never fails an auth request.
type AuthEvent struct {
	Kind      AuthEventKind
	UserID    string // empty for denied attempts
	Email     string
	Timestamp time.Time
}
