// Package models defines the data structures shared by the repositories,
// the external directory client, and the auth service.
package models

// UserProfile is a read-only copy of a profile owned by the external user
// service. The ID is an opaque stable identifier assigned by that service.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
