package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"music-catalog/internal/model"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// itemTables maps a favorite category to the table holding its items.
var itemTables = map[model.Category]string{
	model.CategoryArtist: "artists",
	model.CategoryAlbum:  "albums",
	model.CategoryTrack:  "tracks",
}

func (r *FavoriteRepository) List(ctx context.Context, userID string, category model.Category, page model.Page) ([]model.Favorite, error) {
	table, ok := itemTables[category]
	if !ok {
		return nil, fmt.Errorf("unknown favorite category %q", category)
	}
	offset, limit := offsetLimit(page)

	rows, err := r.pool.Query(ctx,
		`SELECT f.id, f.user_id, f.item_id, i.name, f.created_at
		 FROM favorites f JOIN `+table+` i ON i.id = f.item_id
		 WHERE f.user_id = $1 AND f.category = $2
		 ORDER BY f.created_at, f.id
		 OFFSET $3 LIMIT $4`, userID, category, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]model.Favorite, 0)
	for rows.Next() {
		var (
			f      model.Favorite
			itemID string
		)
		if err := rows.Scan(&f.ID, &f.UserID, &itemID, &f.ItemName, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		f.Target, _ = model.NewFavoriteTarget(category, itemID)
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// Add inserts only when the referenced item exists, in one statement.
func (r *FavoriteRepository) Add(ctx context.Context, f model.Favorite) error {
	table, ok := itemTables[f.Target.Category()]
	if !ok {
		return fmt.Errorf("unknown favorite category %q", f.Target.Category())
	}

	tag, err := r.pool.Exec(ctx,
		`INSERT INTO favorites (id, user_id, category, item_id, created_at)
		 SELECT $1::text, $2::text, $3::text, i.id, $5::timestamptz FROM `+table+` i WHERE i.id = $4`,
		f.ID, f.UserID, f.Target.Category(), f.Target.ItemID(), f.CreatedAt)
	if err != nil {
		if sentinel := classify(err, model.ErrNotFound); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("add favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID string, favoriteID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1 AND user_id = $2`, favoriteID, userID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func deleteFavoritesOf(ctx context.Context, tx pgx.Tx, target model.FavoriteTarget) error {
	if _, err := tx.Exec(ctx, `DELETE FROM favorites WHERE category = $1 AND item_id = $2`, target.Category(), target.ItemID()); err != nil {
		return fmt.Errorf("delete favorites of %s %s: %w", target.Category(), target.ItemID(), err)
	}
	return nil
}
