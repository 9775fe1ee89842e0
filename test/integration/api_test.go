//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"music-catalog/internal/app"
	"music-catalog/internal/config"
)

func newPostgresServer(t *testing.T) *httptest.Server {
	t.Helper()

	_, url := newTestDB(t)
	cfg := &config.Config{
		ServerPort:              "0",
		RequestTimeout:          5 * time.Second,
		JWTSecret:               "integration-secret-0123456789",
		JWTTTL:                  time.Hour,
		BcryptCost:              4,
		StorageBackend:          config.StoragePostgres,
		DatabaseURL:             url,
		DBMaxConns:              5,
		RevocationBackend:       config.RevocationPostgres,
		RevocationSweepInterval: time.Minute,
		CORSOrigins:             []string{"*"},
		RateLimitRPM:            1000,
		AuthRateLimitRPM:        1000,
		LogFormat:               "json",
	}

	a, err := app.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	server := httptest.NewServer(a.Handler())
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, payload any) *http.Response {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func loginToken(t *testing.T, serverURL, email, password string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, serverURL+"/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload.Data.Token
}

func TestAuthFlowAgainstPostgres(t *testing.T) {
	server := newPostgresServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/signup", "", map[string]string{"email": "a@x.com", "password": "first"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/signup", "", map[string]string{"email": "b@x.com", "password": "second"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/signup", "", map[string]string{"email": "B@X.COM", "password": "again"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	viewer := loginToken(t, server.URL, "b@x.com", "second")

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/users", viewer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/logout", viewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/artists", viewer, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	admin := loginToken(t, server.URL, "a@x.com", "first")
	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/users?role=Viewer", admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
