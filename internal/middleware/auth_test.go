package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"music-catalog/internal/model"
	"music-catalog/pkg/apierror"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateToken(ctx context.Context, token string) (*model.Identity, error) {
	args := m.Called(ctx, token)
	identity, _ := args.Get(0).(*model.Identity)
	return identity, args.Error(1)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) model.APIResponse {
	t.Helper()
	var resp model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRequireAuth(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		token, ok := TokenFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-User", identity.UserID)
		w.Header().Set("X-Token", token)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing or malformed header", func(t *testing.T) {
		validator := new(mockValidator)
		handler := NewAuthMiddleware(validator).RequireAuth(okHandler)

		for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc", "tok"} {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/artists", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
			assert.Equal(t, MsgUnauthorized, decodeEnvelope(t, rec).Message)
		}
		validator.AssertNotCalled(t, "ValidateToken", mock.Anything, mock.Anything)
	})

	t.Run("validator message is passed through", func(t *testing.T) {
		validator := new(mockValidator)
		validator.On("ValidateToken", mock.Anything, "revoked").
			Return(nil, apierror.Unauthenticated("token is invalid or expired, please log in again"))
		handler := NewAuthMiddleware(validator).RequireAuth(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/artists", nil)
		req.Header.Set("Authorization", "Bearer revoked")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.Equal(t, 401, resp.Status)
		assert.Equal(t, "token is invalid or expired, please log in again", resp.Message)
	})

	t.Run("storage failure is a server error", func(t *testing.T) {
		validator := new(mockValidator)
		validator.On("ValidateToken", mock.Anything, "tok").Return(nil, errors.New("redis down"))
		handler := NewAuthMiddleware(validator).RequireAuth(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/artists", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		validator := new(mockValidator)
		validator.On("ValidateToken", mock.Anything, "good").Return(&model.Identity{UserID: "u1", Role: model.RoleViewer}, nil)
		handler := NewAuthMiddleware(validator).RequireAuth(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/artists", nil)
		req.Header.Set("Authorization", "bearer good")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", rec.Header().Get("X-User"))
		assert.Equal(t, "good", rec.Header().Get("X-Token"))
		validator.AssertExpectations(t)
	})
}

func TestRequireRoles(t *testing.T) {
	mw := NewAuthMiddleware(new(mockValidator))
	handler := mw.RequireRoles(model.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name     string
		identity *model.Identity
		want     int
	}{
		{"admin passes", &model.Identity{UserID: "a", Role: model.RoleAdmin}, http.StatusOK},
		{"editor is forbidden", &model.Identity{UserID: "e", Role: model.RoleEditor}, http.StatusForbidden},
		{"viewer is forbidden", &model.Identity{UserID: "v", Role: model.RoleViewer}, http.StatusForbidden},
		{"no identity is unauthenticated", nil, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
			if tc.identity != nil {
				req = req.WithContext(context.WithValue(req.Context(), identityContextKey, tc.identity))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server error", decodeEnvelope(t, rec).Message)
}
