package models

import "time"

// CredentialRecord is the stored password and refresh-token state for one
// user. RefreshToken is empty when no token has been issued yet; at most one
// refresh token per user is live at any time, a new one overwrites the old.
type CredentialRecord struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"userId"`
	Password     string    `json:"password"`
	RefreshToken string    `json:"refreshToken"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
