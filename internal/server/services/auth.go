// Package services contains the server-side business logic. This file
// implements AuthService, the auth session core: registration, login,
// refresh-token rotation, and access-token validation, composed from the
// token codec, the credential store, the external user directory, and the
// read-through session cache.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/dkovalev2/authgate/internal/common"
	"github.com/dkovalev2/authgate/internal/logging"
	"github.com/dkovalev2/authgate/internal/server/cache"
	"github.com/dkovalev2/authgate/internal/server/models"
	"github.com/dkovalev2/authgate/internal/server/repositories/credentials"
	"github.com/dkovalev2/authgate/internal/server/token"
)

// authHeaderPrefix is the required literal prefix of the Authorization
// header value on the check endpoint.
const authHeaderPrefix = "Bearer "

// TokenPair bundles a short-lived access token and a longer-lived refresh
// token. Only the refresh half is ever persisted, inside the credential
// record.
type TokenPair struct {
	AuthToken    string `json:"authToken"`
	RefreshToken string `json:"refreshToken"`
}

// Directory is the consumer-side contract for the external user service.
type Directory interface {
	// CreateUser returns (nil, nil) when the directory refuses creation.
	CreateUser(ctx context.Context, email, name string) (*models.UserProfile, error)
	// GetUserByEmail returns common.ErrorNotFound for absent users.
	GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error)
}

// AuthService orchestrates the auth flows. Safe for concurrent use: it holds
// no mutable state of its own, and refresh-token writes are atomic per user
// at the store level.
type AuthService struct {
	directory   Directory
	credentials credentials.Repository
	cache       cache.Cache
	codec       *token.Codec
	logger      logging.Logger
}

func NewAuthService(dir Directory, creds credentials.Repository, c cache.Cache, codec *token.Codec, logger logging.Logger) *AuthService {
	return &AuthService{
		directory:   dir,
		credentials: creds,
		cache:       c,
		codec:       codec,
		logger:      logger,
	}
}

// Register delegates profile creation to the directory and, on success,
// creates the credential record. The result is a bare success flag: a
// refused creation (e.g. duplicate email) is false with no error, and no
// tokens are issued at registration time.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (bool, error) {
	user, err := s.directory.CreateUser(ctx, email, name)
	if err != nil {
		return false, fmt.Errorf("error creating user in directory: %w", err)
	}
	if user == nil {
		return false, nil
	}

	if _, err := s.credentials.Create(ctx, user.ID, password); err != nil {
		return false, fmt.Errorf("error creating credential record: %w", err)
	}

	return true, nil
}

// Login authenticates by email and password and returns a fresh token pair.
// Unknown email and wrong password both map to common.ErrorUnauthorized so
// the two cases are indistinguishable to the caller.
//
// Passwords are compared exactly as stored. Constant-time comparison keeps
// the comparison itself timing-neutral; the plaintext storage it compares
// against is inherited from the upstream contract (see DESIGN.md).
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	info, err := s.fullUserInfo(ctx, email)
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(info.Credential.Password), []byte(password)) != 1 {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.issueAndStore(ctx, info.Credential.UserID, email)
	if err != nil {
		return nil, err
	}

	// Login refreshes the cached pair instead of invalidating it, so a read
	// within the cache TTL observes the rotated token. This mirrors the
	// upstream behavior, where the cached record and the persisted one were
	// a single shared object. Entries handed out by the cache are shared
	// between requests: write back a copy, never mutate one in place.
	updated := *info
	updated.Credential.RefreshToken = pair.RefreshToken
	if err := s.cache.Set(ctx, email, &updated); err != nil {
		s.logger.Warn(ctx, "cache write after login failed", "error", err)
	}

	return pair, nil
}

// Refresh exchanges a valid, currently-stored refresh token for a fresh
// pair, invalidating the old token by overwriting it. The email claim is
// decoded before verification is complete, but it never authorizes by
// itself: the supplied token must equal the stored one and the claim email
// must equal the profile email.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if !s.codec.Verify(token.KindRefresh, refreshToken) {
		return nil, common.ErrorUnauthorized
	}

	claims, err := s.codec.DecodeRefreshUnsafe(refreshToken)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	info, err := s.fullUserInfo(ctx, claims.Email)
	if err != nil {
		return nil, err
	}

	if info.Credential.RefreshToken != refreshToken || info.User.Email != claims.Email {
		return nil, common.ErrorUnauthorized
	}

	// Drop the cached pair so the next lookup observes the rotated record.
	if err := s.cache.Delete(ctx, info.User.Email); err != nil {
		s.logger.Warn(ctx, "cache invalidation failed", "email", info.User.Email, "error", err)
	}

	return s.issueAndStore(ctx, info.Credential.UserID, claims.Email)
}

// ValidateAccess reports whether the Authorization header value carries a
// valid, unexpired access token. No user lookup happens here: validity is
// purely a function of signature and expiry, so tokens issued before a user
// was deleted stay valid until their TTL lapses.
func (s *AuthService) ValidateAccess(authHeader string) bool {
	if !strings.HasPrefix(authHeader, authHeaderPrefix) {
		return false
	}

	return s.codec.Verify(token.KindAccess, strings.TrimPrefix(authHeader, authHeaderPrefix))
}

// fullUserInfo resolves the (profile, credentials) pair for an email through
// the cache, falling back to the directory and the credential store on a
// miss. An absent profile maps to ErrorUnauthorized; a profile without a
// credential record is a consistency violation and maps to ErrorInternal.
func (s *AuthService) fullUserInfo(ctx context.Context, email string) (*cache.Entry, error) {
	entry, ok, err := s.cache.Get(ctx, email)
	if err != nil {
		// A broken cache degrades to the source of truth.
		s.logger.Warn(ctx, "cache read failed", "error", err)
	}
	if ok {
		return entry, nil
	}

	user, err := s.directory.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "user directory lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	cred, err := s.credentials.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// A profile must always have a credential record.
			s.logger.Error(ctx, "profile has no credential record", "userId", user.ID)
			return nil, common.ErrorInternal
		}
		s.logger.Error(ctx, "credential lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	entry = &cache.Entry{User: *user, Credential: *cred}
	if err := s.cache.Set(ctx, email, entry); err != nil {
		s.logger.Warn(ctx, "cache write failed", "error", err)
	}

	return entry, nil
}

// issueAndStore mints a token pair and persists its refresh half as the
// single currently-valid token for the user.
func (s *AuthService) issueAndStore(ctx context.Context, userID, email string) (*TokenPair, error) {
	access, err := s.codec.IssueAccess(userID)
	if err != nil {
		s.logger.Error(ctx, "access token signing failed", "error", err)
		return nil, common.ErrorInternal
	}

	refresh, err := s.codec.IssueRefresh(email)
	if err != nil {
		s.logger.Error(ctx, "refresh token signing failed", "error", err)
		return nil, common.ErrorInternal
	}

	if _, err := s.credentials.UpdateRefreshToken(ctx, userID, refresh); err != nil {
		s.logger.Error(ctx, "refresh token persist failed", "userId", userID, "error", err)
		return nil, common.ErrorInternal
	}

	return &TokenPair{AuthToken: access, RefreshToken: refresh}, nil
}
