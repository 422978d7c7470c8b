package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkovalev2/authgate/internal/common"
	"github.com/dkovalev2/authgate/internal/dbx"
	"github.com/dkovalev2/authgate/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by both
// *sql.DB and *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID, password string) (*models.CredentialRecord, error) {
	query := `
		INSERT INTO credentials (user_id, password)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	rec := &models.CredentialRecord{UserID: userID, Password: password}
	err := r.db.QueryRowContext(ctx, query, userID, password).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.CredentialRecord, error) {
	query := `
		SELECT id, user_id, password, refresh_token, created_at, updated_at
		FROM credentials
		WHERE user_id = $1
	`

	rec := &models.CredentialRecord{}
	var refreshToken sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&rec.ID, &rec.UserID, &rec.Password, &refreshToken, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	rec.RefreshToken = refreshToken.String

	return rec, nil
}

// UpdateRefreshToken relies on the row-level atomicity of a single UPDATE:
// concurrent rotations for the same user serialize on the row lock and each
// caller observes the record exactly as its own write left it.
func (r *PostgresRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string) (*models.CredentialRecord, error) {
	query := `
		UPDATE credentials
		SET refresh_token = $2, updated_at = now()
		WHERE user_id = $1
		RETURNING id, user_id, password, refresh_token, created_at, updated_at
	`

	rec := &models.CredentialRecord{}
	var stored sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID, refreshToken).
		Scan(&rec.ID, &rec.UserID, &rec.Password, &stored, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	rec.RefreshToken = stored.String

	return rec, nil
}
