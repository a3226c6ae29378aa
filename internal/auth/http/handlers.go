package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	httpapi "github.com/yash200611/launchmate/internal/api/http"
	"github.com/yash200611/launchmate/internal/auth"
	"github.com/yash200611/launchmate/internal/auth/domain"
	"github.com/yash200611/launchmate/internal/auth/middleware"
	"github.com/yash200611/launchmate/internal/auth/service"
	"github.com/yash200611/launchmate/internal/logging"
)

// Authenticate serves the combined sign-up / sign-in endpoint.
func (h *Handler) Authenticate(c *gin.Context) {
	var req authReq
	if err := httpapi.DecodeStrict(c, &req); err != nil {
		httpapi.WriteError(c, "auth", err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || req.Type == "" {
		httpapi.WriteError(c, "auth", domain.ErrMissingFields)
		return
	}

	ctx := c.Request.Context()
	switch req.Type {
	case authTypeSignUp:
		u, err := h.authService.SignUp(ctx, req.Email, req.Password, req.FullName)
		if err != nil {
			httpapi.WriteError(c, "sign up", err)
			return
		}
		c.JSON(http.StatusCreated, authResp{Email: u.Email, UserID: u.ID.Hex()})

	case authTypeSignIn:
		sess, err := h.authService.SignIn(ctx, req.Email, req.Password)
		if err != nil {
			httpapi.WriteError(c, "sign in", err)
			return
		}
		h.setSessionCookie(c, sess)
		c.JSON(http.StatusOK, authResp{Email: sess.User.Email, UserID: sess.User.ID.Hex()})

	default:
		httpapi.WriteError(c, "auth", domain.ErrInvalidAuthType)
	}
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req domain.Registration
	if err := httpapi.DecodeStrict(c, &req); err != nil {
		httpapi.WriteError(c, "register", err)
		return
	}

	sess, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		httpapi.WriteError(c, "register", err)
		return
	}
	h.setSessionCookie(c, sess)
	c.JSON(http.StatusCreated, sessionResp{Message: "User created successfully", User: sess.User.Summary()})
}

func (h *Handler) Login(c *gin.Context) {
	var req domain.Credentials
	if err := httpapi.DecodeStrict(c, &req); err != nil {
		httpapi.WriteError(c, "login", err)
		return
	}

	sess, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		httpapi.WriteError(c, "login", err)
		return
	}
	h.setSessionCookie(c, sess)
	c.JSON(http.StatusOK, sessionResp{Message: "Logged in successfully", User: sess.User.Summary()})
}

// CreateProfile records a user profile by email. An existing profile is
// reported with 200 and left unchanged.
func (h *Handler) CreateProfile(c *gin.Context) {
	var req profileReq
	if err := httpapi.DecodeStrict(c, &req); err != nil {
		httpapi.WriteError(c, "create profile", err)
		return
	}

	created, err := h.authService.EnsureProfile(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		httpapi.WriteError(c, "create profile", err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, messageResp{Message: "User already exists"})
		return
	}
	c.JSON(http.StatusCreated, messageResp{Message: "User created"})
}

// Me returns the current user. It runs behind RequireSession.
func (h *Handler) Me(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		httpapi.WriteError(c, "me", domain.ErrNotAuthenticated)
		return
	}

	u, err := h.authService.Me(c.Request.Context(), id)
	if err != nil {
		httpapi.WriteError(c, "me", err)
		return
	}
	c.JSON(http.StatusOK, u.Summary())
}

// Logout always clears the cookie. A valid session token is also revoked.
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if raw := middleware.ExtractToken(c, h.cookie.Name); raw != "" {
		if id, err := h.authService.Authenticate(ctx, raw); err == nil {
			if err := h.authService.Logout(ctx, id); err != nil {
				logging.FromContext(ctx).Warn().Err(err).Msg("revoke session failed")
			}
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, messageResp{Message: "Logged out"})
}

func (h *Handler) setSessionCookie(c *gin.Context, sess *service.Session) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.Expires,
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
