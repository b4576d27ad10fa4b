package server_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahmid/focusflow/internal/config"
	"github.com/tahmid/focusflow/internal/server"
)

// newTestServer wires a real server over a throwaway database. No
// YouTube key is set, so boost routes run in their degraded mode.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(discard{}, nil))

	cfg := &config.Config{
		Port:        8080,
		DBPath:      filepath.Join(t.TempDir(), "test.db"),
		JWTSecret:   "integration-test-secret-value",
		BcryptCost:  4, // bcrypt.MinCost, tests don't need slow hashes
		LogLevel:    "error",
		CORSOrigins: "*",
	}
	require.NoError(t, cfg.Validate())

	srv, err := server.New(cfg, logger)
	require.NoError(t, err)

	return srv.Router()
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestServerEndToEnd(t *testing.T) {
	router := newTestServer(t)

	do := func(method, path, body, token string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("health", func(t *testing.T) {
		rr := do(http.MethodGet, "/health", "", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "healthy")
	})

	t.Run("protected routes reject missing token", func(t *testing.T) {
		for _, path := range []string{"/api/users/me", "/api/goals", "/api/music/playlists"} {
			rr := do(http.MethodGet, path, "", "")
			assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
		}
	})

	// The full happy path: register, login, use the token.
	rr := do(http.MethodPost, "/api/users/register",
		`{"email":"e2e@example.com","username":"e2e","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = do(http.MethodPost, "/api/users/login",
		`{"email":"e2e@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&login))
	require.Equal(t, "bearer", login.TokenType)
	require.NotEmpty(t, login.AccessToken)

	t.Run("token grants access", func(t *testing.T) {
		rr := do(http.MethodGet, "/api/users/me", "", login.AccessToken)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "e2e@example.com")
	})

	t.Run("goal lifecycle over HTTP", func(t *testing.T) {
		rr := do(http.MethodPost, "/api/goals",
			`{"title":"Master Go","category":"learning"}`, login.AccessToken)
		require.Equal(t, http.StatusCreated, rr.Code)

		var goal struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&goal))

		rr = do(http.MethodGet, "/api/goals/"+goal.ID, "", login.AccessToken)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("stats route is not shadowed by the id route", func(t *testing.T) {
		rr := do(http.MethodGet, "/api/activities/stats/summary", "", login.AccessToken)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "total_activities")
	})

	t.Run("boost degrades without an API key", func(t *testing.T) {
		rr := do(http.MethodGet, "/api/boost/recommendations", "", login.AccessToken)
		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "provider_unavailable")
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		rr := do(http.MethodGet, "/api/users/me", "", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
