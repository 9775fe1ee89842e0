package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"music-catalog/internal/event"
	"music-catalog/internal/model"
	"music-catalog/internal/revocation"
	"music-catalog/pkg/apierror"
	"music-catalog/pkg/objectid"
)

const (
	MsgMissingField   = "bad request, reason: missing field"
	MsgTokenRevoked   = "token is invalid or expired, please log in again"
	MsgInvalidToken   = "invalid token"
	MsgWrongPassword  = "bad request, reason: incorrect password"
	MsgUserNotFound   = "user not found"
	MsgEmailTaken     = "email already exists"
	minJWTSecretBytes = 16
)

type AuthService struct {
	users      UserStore
	revoked    revocation.Store
	bus        event.Bus
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration, bcryptCost int, users UserStore, revoked revocation.Store, bus event.Bus) (*AuthService, error) {
	if len(strings.TrimSpace(jwtSecret)) < minJWTSecretBytes {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minJWTSecretBytes)
	}
	if users == nil || revoked == nil {
		return nil, errors.New("auth service requires a user store and a revocation store")
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	return &AuthService{
		users:      users,
		revoked:    revoked,
		bus:        bus,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}, nil
}

func (s *AuthService) Signup(ctx context.Context, email string, password string) (model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.User{}, apierror.InvalidInput(MsgMissingField, "email and password are required")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.User{}, err
	}
	if exists {
		return model.User{}, apierror.Conflict(MsgEmailTaken, email)
	}

	hash, err := hashPassword(password, s.bcryptCost)
	if err != nil {
		return model.User{}, err
	}

	now := s.now().UTC()
	user := model.User{
		ID:           objectid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateWithBootstrapRole(ctx, &user); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return model.User{}, apierror.Conflict(MsgEmailTaken, email)
		}
		return model.User{}, err
	}

	s.publish(event.TypeUserSignedUp, user.ID, user.Role, user.ID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (model.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.Session{}, apierror.InvalidInput(MsgMissingField, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, apierror.NotFound(MsgUserNotFound, "")
	}
	if err != nil {
		return model.Session{}, err
	}

	if !passwordMatches(user.PasswordHash, password) {
		return model.Session{}, apierror.InvalidInput(MsgWrongPassword, "")
	}

	session, err := s.issueToken(user)
	if err != nil {
		return model.Session{}, err
	}

	s.publish(event.TypeSessionStarted, user.ID, user.Role, user.ID)
	return session, nil
}

// Logout revokes the exact token value until it would have expired anyway.
// Revoking an already revoked token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apierror.InvalidInput("bad request", "token is required")
	}

	claims, expiresAt := s.revocationExpiry(token)
	if err := s.revoked.Revoke(ctx, token, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	s.publish(event.TypeSessionRevoked, claims.UserID, claims.Role, claims.UserID)
	return nil
}

func (s *AuthService) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.revoked.IsRevoked(ctx, token)
}

// ValidateToken checks revocation first, then signature and expiry, and
// returns the identity embedded in the token.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*model.Identity, error) {
	revoked, err := s.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return nil, apierror.Unauthenticated(MsgTokenRevoked)
	}

	claims := &model.AuthClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, apierror.Unauthenticated(MsgInvalidToken)
	}

	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, apierror.Unauthenticated(MsgInvalidToken)
	}

	return &model.Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, identity model.Identity, oldPassword string, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apierror.InvalidInput("bad request", "missing required fields: old_password or new_password")
	}

	user, err := s.users.FindByID(ctx, identity.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NotFound(MsgUserNotFound, "")
	}
	if err != nil {
		return err
	}

	if !passwordMatches(user.PasswordHash, oldPassword) {
		return apierror.InvalidInput("old password is incorrect", "")
	}

	hash, err := hashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierror.NotFound(MsgUserNotFound, "")
		}
		return err
	}

	s.publish(event.TypePasswordChanged, identity.UserID, identity.Role, user.ID)
	return nil
}

func (s *AuthService) issueToken(user model.User) (model.Session, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.tokenTTL)

	claims := model.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: user.ID,
		Role:   user.Role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return model.Session{}, fmt.Errorf("sign token: %w", err)
	}

	return model.Session{Token: token, ExpiresAt: expiresAt}, nil
}

// revocationExpiry reads the token's exp without verifying it, capped at one
// token lifetime from now so a forged exp cannot pin an entry forever.
func (s *AuthService) revocationExpiry(token string) (model.AuthClaims, time.Time) {
	limit := s.now().Add(s.tokenTTL)

	var claims model.AuthClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return claims, limit
	}

	if claims.ExpiresAt.Time.After(limit) {
		return claims, limit
	}
	return claims, claims.ExpiresAt.Time
}

func (s *AuthService) publish(kind event.Type, actorID string, actorRole model.Role, resource string) {
	publish(s.bus, kind, model.Identity{UserID: actorID, Role: actorRole}, resource)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
