package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"music-catalog/internal/database"
	"music-catalog/internal/model"
)

type ArtistRepository struct {
	pool *pgxpool.Pool
}

func NewArtistRepository(pool *pgxpool.Pool) *ArtistRepository {
	return &ArtistRepository{pool: pool}
}

const artistColumns = `id, name, grammy, hidden, created_at, updated_at`

func scanArtist(row pgx.Row) (model.Artist, error) {
	var a model.Artist
	err := row.Scan(&a.ID, &a.Name, &a.Grammy, &a.Hidden, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *ArtistRepository) List(ctx context.Context, filter model.ArtistFilter, page model.Page) ([]model.Artist, error) {
	var where whereBuilder
	if filter.Grammy != nil {
		where.add("grammy = $%d", *filter.Grammy)
	}
	if filter.Hidden != nil {
		where.add("hidden = $%d", *filter.Hidden)
	}
	offset, limit := offsetLimit(page)
	sql := `SELECT ` + artistColumns + ` FROM artists` + where.clause() + ` ORDER BY created_at, id` + where.page(offset, limit)

	rows, err := r.pool.Query(ctx, sql, where.args...)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	artists := make([]model.Artist, 0)
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

func (r *ArtistRepository) Get(ctx context.Context, id string) (model.Artist, error) {
	a, err := scanArtist(r.pool.QueryRow(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = $1`, id))
	if err != nil {
		if sentinel := classify(err, nil); sentinel != nil {
			return model.Artist{}, sentinel
		}
		return model.Artist{}, fmt.Errorf("get artist: %w", err)
	}
	return a, nil
}

func (r *ArtistRepository) Create(ctx context.Context, a model.Artist) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO artists (id, name, grammy, hidden, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Name, a.Grammy, a.Hidden, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if sentinel := classify(err, nil); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("create artist: %w", err)
	}
	return nil
}

func (r *ArtistRepository) Update(ctx context.Context, id string, patch model.ArtistPatch) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE artists SET
		    name = COALESCE($2, name),
		    grammy = COALESCE($3, grammy),
		    hidden = COALESCE($4, hidden),
		    updated_at = $5
		 WHERE id = $1`,
		id, patch.Name, patch.Grammy, patch.Hidden, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete fails with model.ErrReferenced while albums or tracks point at the
// artist and removes favorites of it in the same transaction.
func (r *ArtistRepository) Delete(ctx context.Context, id string) (model.Artist, error) {
	var deleted model.Artist
	err := database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		a, err := scanArtist(tx.QueryRow(ctx, `DELETE FROM artists WHERE id = $1 RETURNING `+artistColumns, id))
		if err != nil {
			return err
		}
		if err := deleteFavoritesOf(ctx, tx, model.ArtistTarget(id)); err != nil {
			return err
		}
		deleted = a
		return nil
	})
	if err != nil {
		if sentinel := classify(err, model.ErrReferenced); sentinel != nil {
			return model.Artist{}, sentinel
		}
		return model.Artist{}, fmt.Errorf("delete artist: %w", err)
	}
	return deleted, nil
}
