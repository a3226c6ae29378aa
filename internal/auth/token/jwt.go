// Package token issues and verifies the HS256 session tokens carried in the
// session cookie or an Authorization: Bearer header.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yash200611/launchmate/internal/auth/domain"
)

var ErrInvalid = errors.New("token: invalid or expired")

// Claims is the JWT payload. userId is kept under the name the web client reads.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration, issuer string) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue signs a session token for u.
func (m *Manager) Issue(u domain.User) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		UserID: u.ID.Hex(),
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID.Hex(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify checks signature, algorithm and expiry and returns the identity.
func (m *Manager) Verify(raw string) (domain.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || claims.UserID == "" {
		return domain.Identity{}, ErrInvalid
	}

	return domain.Identity{
		UserID:   claims.UserID,
		Email:    claims.Email,
		TokenID:  claims.ID,
		Expires:  claims.ExpiresAt.Time,
		Provider: "session",
	}, nil
}
