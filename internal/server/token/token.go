// Package token signs and verifies the two bearer-token kinds used by the
// auth flows. Access and refresh tokens use independent HS256 secrets and
// independent lifetimes, so the two kinds are never interchangeable even if
// one secret leaks.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind selects the signing secret and validity window for a token.
type Kind int

const (
	// KindAccess is the short-lived token authorizing API calls.
	KindAccess Kind = iota
	// KindRefresh is the longer-lived token exchanged for a fresh pair.
	KindRefresh
)

var ErrUnknownKind = errors.New("unknown token kind")

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// RefreshClaims is the payload of a refresh token.
type RefreshClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Codec issues and verifies signed tokens. Safe for concurrent use.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewCodec(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (c *Codec) kindParams(kind Kind) ([]byte, time.Duration, error) {
	switch kind {
	case KindAccess:
		return c.accessSecret, c.accessTTL, nil
	case KindRefresh:
		return c.refreshSecret, c.refreshTTL, nil
	default:
		return nil, 0, ErrUnknownKind
	}
}

// IssueAccess signs a new access token carrying the user id.
func (c *Codec) IssueAccess(userID string) (string, error) {
	return c.issue(KindAccess, func(reg jwt.RegisteredClaims) jwt.Claims {
		return AccessClaims{RegisteredClaims: reg, UserID: userID}
	})
}

// IssueRefresh signs a new refresh token carrying the email.
func (c *Codec) IssueRefresh(email string) (string, error) {
	return c.issue(KindRefresh, func(reg jwt.RegisteredClaims) jwt.Claims {
		return RefreshClaims{RegisteredClaims: reg, Email: email}
	})
}

func (c *Codec) issue(kind Kind, build func(jwt.RegisteredClaims) jwt.Claims) (string, error) {
	secret, ttl, err := c.kindParams(kind)
	if err != nil {
		return "", err
	}

	now := c.now()
	reg := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, build(reg)).SignedString(secret)
}

// Verify reports whether tokenString is a structurally valid, unexpired
// token signed under the given kind's secret. Malformed, expired, or
// mis-signed input verifies false; Verify never returns an error.
func (c *Codec) Verify(kind Kind, tokenString string) bool {
	secret, _, err := c.kindParams(kind)
	if err != nil {
		return false
	}

	parsed, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)

	return err == nil && parsed.Valid
}

// DecodeRefreshUnsafe extracts refresh claims without checking signature or
// expiry. It must never authorize anything by itself: callers verify the
// token separately and cross-check the decoded email against stored state.
func (c *Codec) DecodeRefreshUnsafe(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
