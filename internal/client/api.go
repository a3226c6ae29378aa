// Package client is the Go front end of the LaunchMate API: a typed HTTP
// client plus the in-memory project aggregate built on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	authdomain "github.com/yash200611/launchmate/internal/auth/domain"
	"github.com/yash200611/launchmate/internal/projects/domain"
)

// GenericMessage is reported when an error response carries no readable body.
const GenericMessage = "Invalid server response"

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Field   string
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// API talks to the LaunchMate server. Sessions are kept in a cookie jar so a
// successful sign-in authenticates later calls.
type API struct {
	baseURL    string
	httpClient *http.Client
	token      string
	cookieName string
}

// DefaultSessionCookie is the server's SESSION_COOKIE_NAME default.
const DefaultSessionCookie = "token"

func NewAPI(baseURL string) *API {
	jar, _ := cookiejar.New(nil)
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		cookieName: DefaultSessionCookie,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// WithToken sends raw as a Bearer token on every call. Used by callers that
// cannot keep a cookie jar between runs.
func (a *API) WithToken(raw string) *API {
	a.token = raw
	return a
}

// WithCookieName matches a server whose SESSION_COOKIE_NAME is not the default.
func (a *API) WithCookieName(name string) *API {
	if name != "" {
		a.cookieName = name
	}
	return a
}

// Token returns the Bearer token, or the session cookie held in the jar.
func (a *API) Token() string {
	if a.token != "" {
		return a.token
	}
	if a.httpClient.Jar == nil {
		return ""
	}
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return ""
	}
	for _, c := range a.httpClient.Jar.Cookies(u) {
		if c.Name == a.cookieName {
			return c.Value
		}
	}
	return ""
}

// WithHTTPClient replaces the transport; the jar of c is used as is.
func (a *API) WithHTTPClient(c *http.Client) *API {
	a.httpClient = c
	return a
}

func (a *API) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	u := a.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: GenericMessage, Body: string(raw)}
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Field   string `json:"field"`
	}
	apiErr := &APIError{Status: status, Message: GenericMessage, Body: string(raw)}
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Error != "":
			apiErr.Message = body.Error
		case body.Message != "":
			apiErr.Message = body.Message
		}
		apiErr.Field = body.Field
	}
	return apiErr
}

func (a *API) ListProjects(ctx context.Context, ownerEmail string) ([]domain.Project, error) {
	var out []domain.Project
	q := url.Values{"ownerEmail": {ownerEmail}}
	if err := a.do(ctx, http.MethodGet, "/api/projects", q, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Project{}
	}
	return out, nil
}

func (a *API) CreateProject(ctx context.Context, in domain.CreateInput) (*domain.Project, error) {
	var out domain.Project
	if err := a.do(ctx, http.MethodPost, "/api/projects", nil, in, &out); err != nil {
		return nil, err
	}
	if out.ID.IsZero() {
		return nil, &APIError{Status: http.StatusCreated, Message: GenericMessage}
	}
	return &out, nil
}

func (a *API) UpdateProject(ctx context.Context, id string, in domain.UpdateInput) error {
	body := struct {
		ID string `json:"id"`
		domain.UpdateInput
	}{ID: id, UpdateInput: in}
	return a.do(ctx, http.MethodPatch, "/api/projects", nil, body, nil)
}

func (a *API) DeleteProject(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/projects", url.Values{"id": {id}}, nil, nil)
}

// AuthResult is the body of the combined sign-up / sign-in endpoint.
type AuthResult struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

func (a *API) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	return a.authenticate(ctx, "signup", email, password)
}

func (a *API) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	return a.authenticate(ctx, "signin", email, password)
}

func (a *API) authenticate(ctx context.Context, kind, email, password string) (*AuthResult, error) {
	in := map[string]string{"type": kind, "email": email, "password": password}
	var out AuthResult
	if err := a.do(ctx, http.MethodPost, "/api/auth", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me resolves the session held in the cookie jar.
func (a *API) Me(ctx context.Context) (*authdomain.Summary, error) {
	var out authdomain.Summary
	if err := a.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Logout(ctx context.Context) error {
	return a.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}
