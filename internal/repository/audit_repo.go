package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"music-catalog/internal/model"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Log(ctx context.Context, entry model.AuditEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_entries (id, action, occurred_at, actor_id, actor_role, resource)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.Action, entry.OccurredAt, entry.ActorID, entry.ActorRole, entry.Resource)
	if err != nil {
		return fmt.Errorf("log audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, filter model.AuditFilter, page model.Page) ([]model.AuditEntry, error) {
	var where whereBuilder
	if filter.Action != "" {
		where.add("lower(action) = lower($%d)", filter.Action)
	}
	offset, limit := offsetLimit(page)
	sql := `SELECT id, action, occurred_at, actor_id, actor_role, resource FROM audit_entries` +
		where.clause() + ` ORDER BY occurred_at DESC, id DESC` + where.page(offset, limit)

	rows, err := r.pool.Query(ctx, sql, where.args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	items := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.OccurredAt, &e.ActorID, &e.ActorRole, &e.Resource); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
