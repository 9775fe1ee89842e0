package service

import (
	"context"
	"errors"
	"time"

	"music-catalog/internal/event"
	"music-catalog/internal/model"
	"music-catalog/pkg/apierror"
	"music-catalog/pkg/objectid"
)

const MsgForbidden = "forbidden access/operation not allowed"

// UserService is account administration. Every operation requires an admin actor.
type UserService struct {
	users      UserStore
	bus        event.Bus
	bcryptCost int
	now        func() time.Time
}

func NewUserService(users UserStore, bcryptCost int, bus event.Bus) *UserService {
	return &UserService{users: users, bus: bus, bcryptCost: bcryptCost, now: time.Now}
}

func (s *UserService) List(ctx context.Context, actor model.Identity, filter model.UserFilter, page model.Page) ([]model.UserSummary, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	out := make([]model.UserSummary, 0, len(users))
	for _, user := range users {
		out = append(out, user.Summary())
	}
	return out, nil
}

// Create registers an account on behalf of an admin. Only editor and viewer
// roles can be granted this way.
func (s *UserService) Create(ctx context.Context, actor model.Identity, email string, password string, rawRole string) (model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return model.User{}, err
	}

	email = normalizeEmail(email)
	if email == "" || password == "" || rawRole == "" {
		return model.User{}, apierror.InvalidInput("bad request", "missing required fields: email, password, or role")
	}

	role, ok := model.ParseRole(rawRole)
	if !ok || !model.AssignableRoles.Contains(role) {
		return model.User{}, apierror.Forbidden(MsgForbidden)
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
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return model.User{}, apierror.Conflict(MsgEmailTaken, email)
		}
		return model.User{}, err
	}

	publish(s.bus, event.TypeUserCreated, actor, user.ID)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor model.Identity, id string) (model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return model.User{}, err
	}
	id, ok := objectid.Normalize(id)
	if !ok {
		return model.User{}, apierror.InvalidInput("bad request", "invalid user ID format")
	}
	if id == actor.UserID {
		return model.User{}, apierror.Forbidden("admins cannot delete their own account")
	}

	user, err := s.users.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierror.NotFound(MsgUserNotFound, id)
	}
	if err != nil {
		return model.User{}, err
	}

	publish(s.bus, event.TypeUserDeleted, actor, user.ID)
	return user, nil
}

func requireAdmin(actor model.Identity) error {
	if actor.Role != model.RoleAdmin {
		return apierror.Forbidden(MsgForbidden)
	}
	return nil
}

func publish(bus event.Bus, kind event.Type, actor model.Identity, resource string) {
	if bus == nil {
		return
	}
	bus.Publish(event.Event{Type: kind, ActorID: actor.UserID, ActorRole: string(actor.Role), Resource: resource})
}
