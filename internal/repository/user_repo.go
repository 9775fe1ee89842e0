package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"music-catalog/internal/database"
	"music-catalog/internal/model"
)

// bootstrapLockKey serialises first-account creation across connections.
const bootstrapLockKey = 727001

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, role, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if sentinel := classify(err, nil); sentinel != nil {
			return model.User{}, sentinel
		}
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if sentinel := classify(err, nil); sentinel != nil {
			return model.User{}, sentinel
		}
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// CreateWithBootstrapRole counts accounts and inserts under a transaction
// scoped advisory lock, so concurrent first signups yield a single admin.
func (r *UserRepository) CreateWithBootstrapRole(ctx context.Context, u *model.User) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, bootstrapLockKey); err != nil {
			return fmt.Errorf("acquire bootstrap lock: %w", err)
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
			return fmt.Errorf("count users: %w", err)
		}

		u.Role = model.BootstrapRole(count)
		return insertUser(ctx, tx, *u)
	})
}

func (r *UserRepository) Create(ctx context.Context, u model.User) error {
	return insertUser(ctx, r.pool, u)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertUser(ctx context.Context, db execer, u model.User) error {
	_, err := db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if sentinel := classify(err, nil); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		userID, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes the account; its favorites go with it through ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id))
	if err != nil {
		if sentinel := classify(err, nil); sentinel != nil {
			return model.User{}, sentinel
		}
		return model.User{}, fmt.Errorf("delete user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, filter model.UserFilter, page model.Page) ([]model.User, error) {
	offset, limit := offsetLimit(page)

	var role *string
	if filter.Role != nil {
		value := string(*filter.Role)
		role = &value
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE ($1::text IS NULL OR role = $1)
		 ORDER BY created_at, id
		 OFFSET $2 LIMIT $3`, role, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
