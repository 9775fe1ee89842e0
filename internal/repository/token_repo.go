package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"music-catalog/internal/revocation"
)

// RevokedTokenRepository is the durable revocation backend. Only token hashes
// are stored.
type RevokedTokenRepository struct {
	pool *pgxpool.Pool
}

func NewRevokedTokenRepository(pool *pgxpool.Pool) *RevokedTokenRepository {
	return &RevokedTokenRepository{pool: pool}
}

func (r *RevokedTokenRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if !expiresAt.After(time.Now()) {
		return nil
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO revoked_tokens (token_hash, expires_at) VALUES ($1, $2)
		 ON CONFLICT (token_hash) DO UPDATE SET expires_at = GREATEST(revoked_tokens.expires_at, EXCLUDED.expires_at)`,
		revocation.Key(token), expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	var revoked bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE token_hash = $1 AND expires_at > now())`,
		revocation.Key(token)).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return revoked, nil
}

func (r *RevokedTokenRepository) Sweep(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("clean expired revocations: %w", err)
	}
	return tag.RowsAffected(), nil
}
