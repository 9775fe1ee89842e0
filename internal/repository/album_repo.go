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

type AlbumRepository struct {
	pool *pgxpool.Pool
}

func NewAlbumRepository(pool *pgxpool.Pool) *AlbumRepository {
	return &AlbumRepository{pool: pool}
}

const albumSelect = `SELECT al.id, al.artist_id, ar.name, al.name, al.year, al.hidden, al.created_at, al.updated_at
	FROM albums al JOIN artists ar ON ar.id = al.artist_id`

func scanAlbum(row pgx.Row) (model.Album, error) {
	var a model.Album
	err := row.Scan(&a.ID, &a.ArtistID, &a.ArtistName, &a.Name, &a.Year, &a.Hidden, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *AlbumRepository) List(ctx context.Context, filter model.AlbumFilter, page model.Page) ([]model.Album, error) {
	var where whereBuilder
	if filter.ArtistID != nil {
		where.add("al.artist_id = $%d", *filter.ArtistID)
	}
	if filter.Hidden != nil {
		where.add("al.hidden = $%d", *filter.Hidden)
	}
	offset, limit := offsetLimit(page)
	sql := albumSelect + where.clause() + ` ORDER BY al.created_at, al.id` + where.page(offset, limit)

	rows, err := r.pool.Query(ctx, sql, where.args...)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	albums := make([]model.Album, 0)
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

func (r *AlbumRepository) Get(ctx context.Context, id string) (model.Album, error) {
	a, err := scanAlbum(r.pool.QueryRow(ctx, albumSelect+` WHERE al.id = $1`, id))
	if err != nil {
		if sentinel := classify(err, nil); sentinel != nil {
			return model.Album{}, sentinel
		}
		return model.Album{}, fmt.Errorf("get album: %w", err)
	}
	return a, nil
}

func (r *AlbumRepository) Create(ctx context.Context, a model.Album) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO albums (id, artist_id, name, year, hidden, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.ArtistID, a.Name, a.Year, a.Hidden, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if sentinel := classify(err, model.ErrNotFound); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("create album: %w", err)
	}
	return nil
}

func (r *AlbumRepository) Update(ctx context.Context, id string, patch model.AlbumPatch) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE albums SET
		    artist_id = COALESCE($2, artist_id),
		    name = COALESCE($3, name),
		    year = COALESCE($4, year),
		    hidden = COALESCE($5, hidden),
		    updated_at = $6
		 WHERE id = $1`,
		id, patch.ArtistID, patch.Name, patch.Year, patch.Hidden, time.Now().UTC())
	if err != nil {
		if sentinel := classify(err, model.ErrNotFound); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("update album: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *AlbumRepository) Delete(ctx context.Context, id string) (model.Album, error) {
	var deleted model.Album
	err := database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		a, err := scanAlbum(tx.QueryRow(ctx, albumSelect+` WHERE al.id = $1`, id))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM albums WHERE id = $1`, id); err != nil {
			return err
		}
		if err := deleteFavoritesOf(ctx, tx, model.AlbumTarget(id)); err != nil {
			return err
		}
		deleted = a
		return nil
	})
	if err != nil {
		if sentinel := classify(err, model.ErrReferenced); sentinel != nil {
			return model.Album{}, sentinel
		}
		return model.Album{}, fmt.Errorf("delete album: %w", err)
	}
	return deleted, nil
}
