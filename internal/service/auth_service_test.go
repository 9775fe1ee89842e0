package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"music-catalog/internal/event"
	"music-catalog/internal/model"
	"music-catalog/internal/repository/memory"
	"music-catalog/internal/revocation"
	"music-catalog/pkg/apierror"
)

const testSecret = "test-secret-at-least-16-bytes"

func newTestAuthService(t *testing.T) (*AuthService, *memory.Store) {
	t.Helper()
	store := memory.New()
	svc, err := NewAuthService(testSecret, time.Hour, bcrypt.MinCost, store.Users(), revocation.NewMemoryStore(), event.NewBus())
	require.NoError(t, err)
	return svc, store
}

func TestNewAuthService_RejectsShortSecret(t *testing.T) {
	store := memory.New()
	_, err := NewAuthService("short", time.Hour, bcrypt.MinCost, store.Users(), revocation.NewMemoryStore(), nil)
	assert.Error(t, err)
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("first account is admin and later ones are viewers", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		first, err := svc.Signup(ctx, "a@x.com", "pw1")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, first.Role)

		second, err := svc.Signup(ctx, "b@x.com", "pw2")
		require.NoError(t, err)
		assert.Equal(t, model.RoleViewer, second.Role)
		assert.NotEqual(t, "pw2", second.PasswordHash)
	})

	t.Run("duplicate email conflicts regardless of case", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		_, err := svc.Signup(ctx, "a@x.com", "pw1")
		require.NoError(t, err)

		_, err = svc.Signup(ctx, "  A@X.com", "other")
		assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	})

	t.Run("missing fields are invalid input", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		_, err := svc.Signup(ctx, "", "pw")
		assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))

		_, err = svc.Signup(ctx, "a@x.com", "")
		assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
	})

	t.Run("concurrent first signups produce exactly one admin", func(t *testing.T) {
		svc, store := newTestAuthService(t)

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Signup(ctx, fmt.Sprintf("user%d@x.com", i), "pw")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		users, err := store.Users().List(ctx, model.UserFilter{}, model.Page{Limit: model.MaxPageLimit})
		require.NoError(t, err)
		require.Len(t, users, 20)

		admins := 0
		for _, user := range users {
			if user.Role == model.RoleAdmin {
				admins++
			}
		}
		assert.Equal(t, 1, admins)
	})

	t.Run("storage failure is passed through unclassified", func(t *testing.T) {
		users := new(MockUserStore)
		svc, err := NewAuthService(testSecret, time.Hour, bcrypt.MinCost, users, revocation.NewMemoryStore(), nil)
		require.NoError(t, err)

		boom := errors.New("connection reset")
		users.On("ExistsByEmail", mock.Anything, "a@x.com").Return(false, nil)
		users.On("CreateWithBootstrapRole", mock.Anything, mock.AnythingOfType("*model.User")).Return(boom)

		_, err = svc.Signup(ctx, "a@x.com", "pw")
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, apierror.KindInternal, apierror.KindOf(err))
		users.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	user, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	t.Run("valid credentials yield a usable token", func(t *testing.T) {
		session, err := svc.Login(ctx, "a@x.com", "pw1")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)

		identity, err := svc.ValidateToken(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, identity.UserID)
		assert.Equal(t, model.RoleAdmin, identity.Role)
	})

	t.Run("wrong password is invalid input", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@x.com", "nope")
		assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@x.com", "pw1")
		assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
	})

	t.Run("two logins yield distinct tokens", func(t *testing.T) {
		first, err := svc.Login(ctx, "a@x.com", "pw1")
		require.NoError(t, err)
		second, err := svc.Login(ctx, "a@x.com", "pw1")
		require.NoError(t, err)
		assert.NotEqual(t, first.Token, second.Token)
	})
}

func TestAuthService_LogoutRevokesOnlyThatToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	_, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	first, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, first.Token))
	require.NoError(t, svc.Logout(ctx, first.Token), "logout is idempotent")

	revoked, err := svc.IsRevoked(ctx, first.Token)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.ValidateToken(ctx, first.Token)
	require.Error(t, err)
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindUnauthenticated, apiErr.Kind)
	assert.Equal(t, MsgTokenRevoked, apiErr.Message)

	_, err = svc.ValidateToken(ctx, second.Token)
	assert.NoError(t, err)

	assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(svc.Logout(ctx, " ")))
}

func TestAuthService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	user, err := svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	sign := func(claims model.AuthClaims, method jwt.SigningMethod, key any) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	valid := func() model.AuthClaims {
		return model.AuthClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			UserID:           user.ID,
			Role:             model.RoleAdmin,
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noExpiry := valid()
	noExpiry.ExpiresAt = nil

	badRole := valid()
	badRole.Role = "Root"

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", sign(valid(), jwt.SigningMethodHS256, []byte("another-secret-of-length"))},
		{"wrong algorithm", sign(valid(), jwt.SigningMethodHS512, []byte(testSecret))},
		{"expired", sign(expired, jwt.SigningMethodHS256, []byte(testSecret))},
		{"missing expiry", sign(noExpiry, jwt.SigningMethodHS256, []byte(testSecret))},
		{"unknown role", sign(badRole, jwt.SigningMethodHS256, []byte(testSecret))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, tc.token)
			var apiErr *apierror.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, apierror.KindUnauthenticated, apiErr.Kind)
			assert.Equal(t, MsgInvalidToken, apiErr.Message)
		})
	}

	t.Run("expiry follows the service clock", func(t *testing.T) {
		session, err := svc.Login(ctx, "a@x.com", "pw1")
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { svc.now = time.Now }()

		_, err = svc.ValidateToken(ctx, session.Token)
		assert.Equal(t, apierror.KindUnauthenticated, apierror.KindOf(err))
	})
}

func TestAuthService_RevocationExpiryIsCapped(t *testing.T) {
	svc, _ := newTestAuthService(t)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, model.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * 365 * time.Hour))},
	}).SignedString([]byte("whatever-key-is-used"))
	require.NoError(t, err)

	_, expiresAt := svc.revocationExpiry(forged)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	_, expiresAt = svc.revocationExpiry("not-a-token")
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	user, err := svc.Signup(ctx, "a@x.com", "old")
	require.NoError(t, err)
	identity := model.Identity{UserID: user.ID, Role: user.Role}

	err = svc.UpdatePassword(ctx, identity, "wrong", "new")
	assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))

	err = svc.UpdatePassword(ctx, identity, "", "new")
	assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))

	require.NoError(t, svc.UpdatePassword(ctx, identity, "old", "new"))

	_, err = svc.Login(ctx, "a@x.com", "old")
	assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
	_, err = svc.Login(ctx, "a@x.com", "new")
	assert.NoError(t, err)

	err = svc.UpdatePassword(ctx, model.Identity{UserID: "000000000000000000000000"}, "a", "b")
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}
