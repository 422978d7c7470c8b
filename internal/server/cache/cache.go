// Package cache provides the read-through session cache mapping an email to
// the joined (user profile, credential record) pair. The cache is never
// authoritative: a miss only signals that callers must recompute from the
// directory and the credential store.
package cache

import (
	"context"

	"github.com/dkovalev2/authgate/internal/server/models"
)

// Entries are stored under this prefix in every backend.
const keyPrefix = "USER_INFO_"

// Entry is the disposable join cached per email.
type Entry struct {
	User       models.UserProfile      `json:"user"`
	Credential models.CredentialRecord `json:"credential"`
}

// Cache is the session-cache contract. Implementations must make per-key
// get/set/delete atomic; a miss is (nil, false, nil), never an error.
type Cache interface {
	Get(ctx context.Context, email string) (*Entry, bool, error)
	Set(ctx context.Context, email string, entry *Entry) error
	Delete(ctx context.Context, email string) error
}

func key(email string) string {
	return keyPrefix + email
}
