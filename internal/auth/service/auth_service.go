package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/yash200611/launchmate/internal/apperrors"
	"github.com/yash200611/launchmate/internal/auth/domain"
	"github.com/yash200611/launchmate/internal/auth/token"
	"github.com/yash200611/launchmate/internal/logging"
)

// UserStore is implemented by *repository.UserRepository.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Insert(ctx context.Context, u *domain.User) error
}

// Revocations is implemented by *repository.SessionRepository.
type Revocations interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// IDTokenVerifier verifies third-party ID tokens such as Firebase's.
type IDTokenVerifier interface {
	Verify(ctx context.Context, raw string) (domain.Identity, error)
}

type Options struct {
	BcryptCost  int
	Revocations Revocations
	Firebase    IDTokenVerifier
}

type AuthService struct {
	users    UserStore
	tokens   *token.Manager
	cost     int
	revoked  Revocations
	firebase IDTokenVerifier
	now      func() time.Time
}

func NewAuthService(users UserStore, tokens *token.Manager, opts Options) *AuthService {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:    users,
		tokens:   tokens,
		cost:     cost,
		revoked:  opts.Revocations,
		firebase: opts.Firebase,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Session is a freshly issued token for a user.
type Session struct {
	User    *domain.User
	Token   string
	Expires time.Time
}

// SignUp creates an account. A taken email is "Email already registered".
func (s *AuthService) SignUp(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	u, err := s.create(ctx, email, password, fullName)
	if errors.Is(err, domain.ErrUserExists) {
		return nil, domain.ErrEmailRegistered
	}
	return u, err
}

// Register creates an account and opens a session. A taken email is a conflict.
func (s *AuthService) Register(ctx context.Context, in domain.Registration) (*Session, error) {
	u, err := s.create(ctx, in.Email, in.Password, in.FullName)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *AuthService) create(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Storage("hash password", err)
	}

	now := s.now()
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info().Str("user_id", u.ID.Hex()).Msg("user registered")
	return u, nil
}

// EnsureProfile records a passwordless user profile for email unless one
// exists. It reports whether a profile was created. A profile cannot sign in
// until it is registered with a password.
func (s *AuthService) EnsureProfile(ctx context.Context, email, name string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(name) == "" {
		return false, domain.ErrMissingProfile
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return false, err
	}

	now := s.now()
	u := &domain.User{Email: email, FullName: name, CreatedAt: now, UpdatedAt: now}
	if err := s.users.Insert(ctx, u); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SignIn distinguishes an unknown email (not found) from a wrong password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrIncorrectPassword
	}
	return s.issue(u)
}

// Login reports every credential failure as "Invalid credentials".
func (s *AuthService) Login(ctx context.Context, in domain.Credentials) (*Session, error) {
	sess, err := s.SignIn(ctx, in.Email, in.Password)
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrIncorrectPassword),
		errors.Is(err, domain.ErrMissingFields):
		return nil, domain.ErrInvalidCredentials
	}
	return sess, err
}

func (s *AuthService) issue(u *domain.User) (*Session, error) {
	raw, claims, err := s.tokens.Issue(*u)
	if err != nil {
		return nil, apperrors.Storage("issue session", err)
	}
	return &Session{User: u, Token: raw, Expires: claims.ExpiresAt.Time}, nil
}

// Authenticate resolves a raw bearer or cookie token. Session JWTs are tried
// first, then Firebase ID tokens when a verifier is configured.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (domain.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Identity{}, domain.ErrNotAuthenticated
	}

	id, err := s.tokens.Verify(raw)
	if err == nil {
		if s.revoked != nil {
			revoked, rerr := s.revoked.IsRevoked(ctx, id.TokenID)
			if rerr != nil {
				return domain.Identity{}, rerr
			}
			if revoked {
				return domain.Identity{}, domain.ErrNotAuthenticated
			}
		}
		return id, nil
	}

	if s.firebase != nil {
		return s.firebase.Verify(ctx, raw)
	}
	return domain.Identity{}, domain.ErrNotAuthenticated
}

// Me loads the account behind id.
func (s *AuthService) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	if id.UserID != "" {
		oid, err := primitive.ObjectIDFromHex(id.UserID)
		if err != nil {
			return nil, domain.ErrNotAuthenticated
		}
		return s.users.FindByID(ctx, oid)
	}
	if id.Email != "" {
		return s.users.FindByEmail(ctx, id.Email)
	}
	return nil, domain.ErrNotAuthenticated
}

// Logout denylists a session token for the rest of its lifetime. Without a
// revocation store the cookie is simply cleared by the caller.
func (s *AuthService) Logout(ctx context.Context, id domain.Identity) error {
	if s.revoked == nil || id.Provider != "session" {
		return nil
	}
	return s.revoked.Revoke(ctx, id.TokenID, id.Expires.Sub(s.now()))
}
