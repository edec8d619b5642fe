package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse carries a single human-readable message.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type signUpRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// signInResponse is the authenticated session payload. Field names follow the
// public API contract consumed by the SPA.
type signInResponse struct {
	Token     string    `json:"token"`
	Type      string    `json:"type"` // always "Bearer"
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type claimsResponse struct {
	Subject   string    `json:"sub"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type validateResponse struct {
	Valid  bool            `json:"valid"`
	Claims *claimsResponse `json:"claims,omitempty"`
}

// userResponse is the non-sensitive user summary. The password hash is never
// part of any response type.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type authEventResponse struct {
	Kind      string    `json:"kind"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

type listAuthEventsResponse struct {
	Data []authEventResponse `json:"data"`
}
