package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/yash200611/launchmate/config"
	"github.com/yash200611/launchmate/internal/auth/domain"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier accepts Firebase ID tokens as an alternative session
// credential. The caller is resolved to a local account by its email claim.
type FirebaseVerifier struct {
	client idTokenVerifier
}

// InitializeFirebase initializes the Firebase Admin SDK and returns a verifier
func InitializeFirebase(ctx context.Context, cfg config.FirebaseConfig) (*FirebaseVerifier, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return &FirebaseVerifier{client: authClient}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, raw string) (domain.Identity, error) {
	tok, err := v.client.VerifyIDToken(ctx, raw)
	if err != nil {
		return domain.Identity{}, domain.ErrNotAuthenticated
	}

	email, _ := tok.Claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Identity{}, domain.ErrNotAuthenticated
	}

	return domain.Identity{
		Email:    email,
		TokenID:  tok.UID,
		Expires:  time.Unix(tok.Expires, 0),
		Provider: "firebase",
	}, nil
}
