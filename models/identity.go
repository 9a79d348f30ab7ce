package models

import "time"

// Identity is the caller decoded from a verified bearer credential.
type Identity struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Username  string    `json:"username"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

func (i Identity) IsStaff() bool {
	return i.Role.IsStaff()
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}
