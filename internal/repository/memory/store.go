// Package memory holds process-local implementations of the service stores.
// They back STORAGE_BACKEND=memory and the service and router tests.
package memory

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"music-catalog/internal/model"
)

// Store is the shared state behind every memory repository. A single lock
// keeps cross-entity checks (references, cascades) consistent.
type Store struct {
	mu        sync.RWMutex
	users     map[string]model.User
	artists   map[string]model.Artist
	albums    map[string]model.Album
	tracks    map[string]model.Track
	favorites map[string]model.Favorite
	audit     []model.AuditEntry
}

func New() *Store {
	return &Store{
		users:     make(map[string]model.User),
		artists:   make(map[string]model.Artist),
		albums:    make(map[string]model.Album),
		tracks:    make(map[string]model.Track),
		favorites: make(map[string]model.Favorite),
	}
}

func (s *Store) Users() *UserStore         { return &UserStore{s: s} }
func (s *Store) Artists() *ArtistStore     { return &ArtistStore{s: s} }
func (s *Store) Albums() *AlbumStore       { return &AlbumStore{s: s} }
func (s *Store) Tracks() *TrackStore       { return &TrackStore{s: s} }
func (s *Store) Favorites() *FavoriteStore { return &FavoriteStore{s: s} }
func (s *Store) Audit() *AuditStore        { return &AuditStore{s: s} }

// removeFavoritesLocked deletes the favorites for which drop returns true.
func (s *Store) removeFavoritesLocked(drop func(model.Favorite) bool) {
	for id, favorite := range s.favorites {
		if drop(favorite) {
			delete(s.favorites, id)
		}
	}
}

func sortedValues[T any](items map[string]T, created func(T) time.Time, id func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	slices.SortFunc(out, func(a, b T) int {
		if c := created(a).Compare(created(b)); c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	})
	return out
}

func paginate[T any](items []T, page model.Page) []T {
	limit := page.Limit
	if limit <= 0 {
		limit = model.DefaultPageLimit
	}
	offset := max(page.Offset, 0)
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return slices.Clone(items[offset:end])
}
