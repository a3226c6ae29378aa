package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yash200611/launchmate/internal/auth/authtest"
	"github.com/yash200611/launchmate/internal/auth/service"
	"github.com/yash200611/launchmate/internal/auth/token"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewAuthService(
		authtest.NewUsers(),
		token.NewManager("secret", 7*24*time.Hour, "launchmate"),
		service.Options{BcryptCost: bcrypt.MinCost, Revocations: authtest.NewRevocations()},
	)
	h := New(svc, CookieSettings{Name: "token", TTL: 7 * 24 * time.Hour})

	r := gin.New()
	h.Register(r.Group("/api/auth"))
	h.RegisterProfiles(r.Group("/api/users"))
	return r
}

func post(t *testing.T, r http.Handler, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func errorOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestSignUpThenSignIn(t *testing.T) {
	r := setupRouter(t)

	rr := post(t, r, "/api/auth", map[string]string{"type": "signup", "email": "a@x.com", "password": "secret"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var signup authResp
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &signup))
	assert.Equal(t, "a@x.com", signup.Email)
	assert.NotEmpty(t, signup.UserID)
	assert.NotContains(t, rr.Body.String(), "password")

	rr = post(t, r, "/api/auth", map[string]string{"type": "signin", "email": "a@x.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rr.Code)
	var signin authResp
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &signin))
	assert.Equal(t, signup.UserID, signin.UserID)

	c := sessionCookie(rr)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, "/", c.Path)

	rr = post(t, r, "/api/auth", map[string]string{"type": "signin", "email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Incorrect password", errorOf(t, rr))

	rr = post(t, r, "/api/auth", map[string]string{"type": "signin", "email": "b@x.com", "password": "secret"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "User not found", errorOf(t, rr))
}

func TestDuplicateSignUp(t *testing.T) {
	r := setupRouter(t)
	body := map[string]string{"type": "signup", "email": "a@x.com", "password": "secret"}

	require.Equal(t, http.StatusCreated, post(t, r, "/api/auth", body).Code)

	rr := post(t, r, "/api/auth", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Email already registered", errorOf(t, rr))
}

func TestAuthBadRequests(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name string
		body map[string]string
		msg  string
	}{
		{"missing type", map[string]string{"email": "a@x.com", "password": "p"}, "Missing fields"},
		{"missing email", map[string]string{"type": "signup", "password": "p"}, "Missing fields"},
		{"missing password", map[string]string{"type": "signin", "email": "a@x.com"}, "Missing fields"},
		{"unknown type", map[string]string{"type": "reset", "email": "a@x.com", "password": "p"}, "Invalid auth type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, r, "/api/auth", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.msg, errorOf(t, rr))
		})
	}
}

func TestRegisterLoginMeLogout(t *testing.T) {
	r := setupRouter(t)

	rr := post(t, r, "/api/auth/register", map[string]string{"email": "a@x.com", "password": "secret", "fullName": "Ada"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var reg sessionResp
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reg))
	assert.Equal(t, "User created successfully", reg.Message)
	assert.Equal(t, "Ada", reg.User.FullName)
	require.NotNil(t, sessionCookie(rr))

	rr = post(t, r, "/api/auth/register", map[string]string{"email": "a@x.com", "password": "secret"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "User already exists", errorOf(t, rr))

	rr = post(t, r, "/api/auth/login", map[string]string{"email": "a@x.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid credentials", errorOf(t, rr))

	rr = post(t, r, "/api/auth/login", map[string]string{"email": "a@x.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rr.Code)
	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)

	me := func(cookies ...*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	rr = me(cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"email":"a@x.com"`)
	assert.NotContains(t, rr.Body.String(), "password")

	rr = me()
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Not authenticated", errorOf(t, rr))

	rr = post(t, r, "/api/auth/logout", map[string]string{}, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	cleared := sessionCookie(rr)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)

	rr = me(cookie)
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "revoked token is rejected")
}

func TestMeWithBearer(t *testing.T) {
	r := setupRouter(t)

	rr := post(t, r, "/api/auth/register", map[string]string{"email": "a@x.com", "password": "secret"})
	require.Equal(t, http.StatusCreated, rr.Code)
	cookie := sessionCookie(rr)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateProfile(t *testing.T) {
	r := setupRouter(t)

	rr := post(t, r, "/api/users", map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing name or email", errorOf(t, rr))

	rr = post(t, r, "/api/users", map[string]string{"email": "a@x.com", "name": "Ada"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"message":"User created"}`, rr.Body.String())

	rr = post(t, r, "/api/users", map[string]string{"email": "a@x.com", "name": "Someone else"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"User already exists"}`, rr.Body.String())

	rr = post(t, r, "/api/auth", map[string]string{"type": "signin", "email": "a@x.com", "password": "secret"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "a profile has no password")
}
