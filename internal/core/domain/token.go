package domain

import "time"

// Claims is the identity data embedded in a bearer token. Tokens are never
// persisted; claims are reconstructed from the signed representation on each
// request.
type Claims struct {
	Subject   string    `json:"sub"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
