package http

import (
	"time"

	"github.com/yash200611/launchmate/internal/auth/domain"
	"github.com/yash200611/launchmate/internal/auth/service"
)

// CookieSettings controls the session cookie written on sign-in.
type CookieSettings struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type Handler struct {
	authService *service.AuthService
	cookie      CookieSettings
}

func New(authService *service.AuthService, cookie CookieSettings) *Handler {
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	return &Handler{
		authService: authService,
		cookie:      cookie,
	}
}

const (
	authTypeSignUp = "signup"
	authTypeSignIn = "signin"
)

// authReq is the body of POST /api/auth.
type authReq struct {
	Type     string `json:"type"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

type authResp struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

type sessionResp struct {
	Message string         `json:"message"`
	User    domain.Summary `json:"user"`
}

type messageResp struct {
	Message string `json:"message"`
}

// profileReq is the body of POST /api/users.
type profileReq struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
