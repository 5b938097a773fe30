package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"career_path/internal/app/mail"
	"career_path/internal/app/service"
	"career_path/internal/common/security"
	"career_path/internal/domain/repository"
	"career_path/internal/platform/config"

	"github.com/stretchr/testify/require"
)

type nullNotifier struct {
	mu       sync.Mutex
	messages []mail.Message
}

func (n *nullNotifier) Enqueue(ctx context.Context, msg mail.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return nil
}

type memRevocations struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (s *memRevocations) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = true
	return nil
}

func (s *memRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[jti], nil
}

func newTestServer(t *testing.T) (*httptest.Server, *nullNotifier) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()

	dir := t.TempDir()
	userRepo := repository.NewJSONUserRepository(filepath.Join(dir, "users.json"))
	progressRepo := repository.NewJSONProgressRepository(filepath.Join(dir, "progress.json"))

	notifier := &nullNotifier{}
	sessionService := service.NewSessionService(&memRevocations{revoked: make(map[string]bool)})
	authService := service.NewAuthService(userRepo, notifier, sessionService)
	progressService := service.NewProgressService(progressRepo, service.NewRoadmapService())

	srv := httptest.NewServer(NewRouter(authService, progressService, sessionService))
	t.Cleanup(srv.Close)
	return srv, notifier
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var payload *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(data)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	srv, notifier := newTestServer(t)

	// Register
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", map[string]string{
		"name": "Ada", "email": "Ada@X.com", "password": "pw1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	decodeBody(t, resp, &created)
	require.Equal(t, "1", created.ID)
	require.Equal(t, "ada@x.com", created.Email)
	require.Len(t, notifier.messages, 1)

	// Login with a differently-cased email
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", map[string]string{
		"email": "ADA@x.com", "password": "pw1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &login)
	require.NotEmpty(t, login.Token)

	// Current identity
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	decodeBody(t, resp, &me)
	require.Equal(t, "1", me.ID)
	require.Equal(t, "ada@x.com", me.Email)
	require.Equal(t, "Ada", me.Name)

	// Logout, then the same token is rejected
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/logout", login.Token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/auth/me", login.Token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)

	body := map[string]string{"name": "Ada", "email": "dup@x.com", "password": "pw1"}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", body)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", body)
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", map[string]string{
		"name": "Ada", "email": "a@x.com", "password": "pw1",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, body := range []map[string]string{
		{"email": "a@x.com", "password": "wrong"},
		{"email": "ghost@x.com", "password": "pw1"},
	} {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", body)
		var e struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &e)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		// Same generic message either way.
		require.Equal(t, "unauthorized access", e.Error)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/api/v1/auth/me", "/api/v1/dashboard"} {
		resp := doJSON(t, http.MethodGet, srv.URL+path, "", nil)
		var e struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &e)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Authorization token required", e.Error)
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/auth/me", "not.a.jwt", nil)
	var e struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &e)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, e.Error, "Invalid token")
}

func TestDashboardAndProgressFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", map[string]string{
		"name": "Ada", "email": "a@x.com", "password": "pw1",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "pw1",
	})
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &login)

	// Mark one skill complete
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/progress/web_dev/HTML", login.Token,
		map[string]bool{"done": true})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Unknown track 404s
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/progress/nope/HTML", login.Token,
		map[string]bool{"done": true})
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Dashboard joins roadmaps with progress
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/dashboard", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dashboard struct {
		Tracks []struct {
			Key    string `json:"key"`
			Title  string `json:"title"`
			Skills []struct {
				Name string `json:"name"`
				Done bool   `json:"done"`
			} `json:"skills"`
		} `json:"tracks"`
	}
	decodeBody(t, resp, &dashboard)
	require.Len(t, dashboard.Tracks, 2)
	require.Equal(t, "web_dev", dashboard.Tracks[0].Key)

	var htmlDone bool
	for _, skill := range dashboard.Tracks[0].Skills {
		if skill.Name == "HTML" {
			htmlDone = skill.Done
		}
	}
	require.True(t, htmlDone)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
