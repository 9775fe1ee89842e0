package memory

import (
	"context"
	"time"

	"music-catalog/internal/model"
)

type FavoriteStore struct {
	s *Store
}

func (r *FavoriteStore) List(_ context.Context, userID string, category model.Category, page model.Page) ([]model.Favorite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := sortedValues(r.s.favorites, func(f model.Favorite) time.Time { return f.CreatedAt }, func(f model.Favorite) string { return f.ID })
	out := all[:0]
	for _, favorite := range all {
		if favorite.UserID != userID || favorite.Target.Category() != category {
			continue
		}
		favorite.ItemName = r.itemNameLocked(favorite.Target)
		out = append(out, favorite)
	}
	return paginate(out, page), nil
}

func (r *FavoriteStore) Add(_ context.Context, favorite model.Favorite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.itemExistsLocked(favorite.Target) {
		return model.ErrNotFound
	}
	for _, existing := range r.s.favorites {
		if existing.UserID == favorite.UserID && existing.Target == favorite.Target {
			return model.ErrDuplicate
		}
	}

	favorite.ItemName = ""
	r.s.favorites[favorite.ID] = favorite
	return nil
}

// Remove only deletes favorites owned by userID.
func (r *FavoriteStore) Remove(_ context.Context, userID string, favoriteID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	favorite, ok := r.s.favorites[favoriteID]
	if !ok || favorite.UserID != userID {
		return model.ErrNotFound
	}
	delete(r.s.favorites, favoriteID)
	return nil
}

func (r *FavoriteStore) itemExistsLocked(target model.FavoriteTarget) bool {
	var ok bool
	switch target.Category() {
	case model.CategoryArtist:
		_, ok = r.s.artists[target.ItemID()]
	case model.CategoryAlbum:
		_, ok = r.s.albums[target.ItemID()]
	case model.CategoryTrack:
		_, ok = r.s.tracks[target.ItemID()]
	}
	return ok
}

func (r *FavoriteStore) itemNameLocked(target model.FavoriteTarget) string {
	switch target.Category() {
	case model.CategoryArtist:
		return r.s.artists[target.ItemID()].Name
	case model.CategoryAlbum:
		return r.s.albums[target.ItemID()].Name
	case model.CategoryTrack:
		return r.s.tracks[target.ItemID()].Name
	default:
		return ""
	}
}
