// Package credentials provides the persistent store mapping a user to their
// password and currently-valid refresh token.
package credentials

import (
	"context"

	"github.com/dkovalev2/authgate/internal/server/models"
)

// Repository is the credential store contract.
//
// UpdateRefreshToken is the only mutation path for refresh tokens; an
// implementation must make it atomic per user so that concurrent rotations
// for the same user never interleave into a lost write.
type Repository interface {
	// Create inserts a record with no refresh token. The user_id unique
	// constraint rejects a second record for the same user.
	Create(ctx context.Context, userID, password string) (*models.CredentialRecord, error)

	// FindByUserID returns the record or common.ErrorNotFound.
	FindByUserID(ctx context.Context, userID string) (*models.CredentialRecord, error)

	// UpdateRefreshToken overwrites the stored refresh token, bumps
	// updated_at, and returns the persisted record. The previous token is
	// thereby invalidated, there is no separate revocation path.
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string) (*models.CredentialRecord, error)
}
