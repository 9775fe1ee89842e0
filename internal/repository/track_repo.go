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

type TrackRepository struct {
	pool *pgxpool.Pool
}

func NewTrackRepository(pool *pgxpool.Pool) *TrackRepository {
	return &TrackRepository{pool: pool}
}

const trackSelect = `SELECT t.id, t.artist_id, t.album_id, ar.name, al.name, t.name, t.duration, t.hidden, t.created_at, t.updated_at
	FROM tracks t
	JOIN artists ar ON ar.id = t.artist_id
	JOIN albums al ON al.id = t.album_id`

func scanTrack(row pgx.Row) (model.Track, error) {
	var t model.Track
	err := row.Scan(&t.ID, &t.ArtistID, &t.AlbumID, &t.ArtistName, &t.AlbumName, &t.Name, &t.Duration, &t.Hidden, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *TrackRepository) List(ctx context.Context, filter model.TrackFilter, page model.Page) ([]model.Track, error) {
	var where whereBuilder
	if filter.ArtistID != nil {
		where.add("t.artist_id = $%d", *filter.ArtistID)
	}
	if filter.AlbumID != nil {
		where.add("t.album_id = $%d", *filter.AlbumID)
	}
	if filter.Hidden != nil {
		where.add("t.hidden = $%d", *filter.Hidden)
	}
	offset, limit := offsetLimit(page)
	sql := trackSelect + where.clause() + ` ORDER BY t.created_at, t.id` + where.page(offset, limit)

	rows, err := r.pool.Query(ctx, sql, where.args...)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	tracks := make([]model.Track, 0)
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func (r *TrackRepository) Get(ctx context.Context, id string) (model.Track, error) {
	t, err := scanTrack(r.pool.QueryRow(ctx, trackSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if sentinel := classify(err, nil); sentinel != nil {
			return model.Track{}, sentinel
		}
		return model.Track{}, fmt.Errorf("get track: %w", err)
	}
	return t, nil
}

func (r *TrackRepository) Create(ctx context.Context, t model.Track) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tracks (id, artist_id, album_id, name, duration, hidden, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.ArtistID, t.AlbumID, t.Name, t.Duration, t.Hidden, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if sentinel := classify(err, model.ErrNotFound); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("create track: %w", err)
	}
	return nil
}

func (r *TrackRepository) Update(ctx context.Context, id string, patch model.TrackPatch) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tracks SET
		    artist_id = COALESCE($2, artist_id),
		    album_id = COALESCE($3, album_id),
		    name = COALESCE($4, name),
		    duration = COALESCE($5, duration),
		    hidden = COALESCE($6, hidden),
		    updated_at = $7
		 WHERE id = $1`,
		id, patch.ArtistID, patch.AlbumID, patch.Name, patch.Duration, patch.Hidden, time.Now().UTC())
	if err != nil {
		if sentinel := classify(err, model.ErrNotFound); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("update track: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *TrackRepository) Delete(ctx context.Context, id string) (model.Track, error) {
	var deleted model.Track
	err := database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		t, err := scanTrack(tx.QueryRow(ctx, trackSelect+` WHERE t.id = $1`, id))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM tracks WHERE id = $1`, id); err != nil {
			return err
		}
		if err := deleteFavoritesOf(ctx, tx, model.TrackTarget(id)); err != nil {
			return err
		}
		deleted = t
		return nil
	})
	if err != nil {
		if sentinel := classify(err, nil); sentinel != nil {
			return model.Track{}, sentinel
		}
		return model.Track{}, fmt.Errorf("delete track: %w", err)
	}
	return deleted, nil
}
