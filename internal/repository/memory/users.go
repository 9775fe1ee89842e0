package memory

import (
	"context"
	"time"

	"music-catalog/internal/model"
)

type UserStore struct {
	s *Store
}

// CreateWithBootstrapRole counts and inserts under the write lock, so only
// one of several concurrent first signups becomes admin.
func (r *UserStore) CreateWithBootstrapRole(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTakenLocked(user.Email) {
		return model.ErrDuplicate
	}

	user.Role = model.BootstrapRole(len(r.s.users))
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserStore) Create(_ context.Context, user model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTakenLocked(user.Email) {
		return model.ErrDuplicate
	}

	r.s.users[user.ID] = user
	return nil
}

func (r *UserStore) FindByID(_ context.Context, id string) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (r *UserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (r *UserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.emailTakenLocked(email), nil
}

func (r *UserStore) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	r.s.users[id] = user
	return nil
}

func (r *UserStore) Delete(_ context.Context, id string) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	delete(r.s.users, id)
	r.s.removeFavoritesLocked(func(f model.Favorite) bool { return f.UserID == id })
	return user, nil
}

func (r *UserStore) List(_ context.Context, filter model.UserFilter, page model.Page) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := sortedValues(r.s.users, func(u model.User) time.Time { return u.CreatedAt }, func(u model.User) string { return u.ID })
	out := all[:0]
	for _, user := range all {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		out = append(out, user)
	}
	return paginate(out, page), nil
}

func (r *UserStore) emailTakenLocked(email string) bool {
	for _, user := range r.s.users {
		if user.Email == email {
			return true
		}
	}
	return false
}
