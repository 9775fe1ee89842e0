package memory

import (
	"context"
	"time"

	"music-catalog/internal/model"
)

type ArtistStore struct {
	s *Store
}

func (r *ArtistStore) List(_ context.Context, filter model.ArtistFilter, page model.Page) ([]model.Artist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := sortedValues(r.s.artists, func(a model.Artist) time.Time { return a.CreatedAt }, func(a model.Artist) string { return a.ID })
	out := all[:0]
	for _, artist := range all {
		if filter.Grammy != nil && artist.Grammy != *filter.Grammy {
			continue
		}
		if filter.Hidden != nil && artist.Hidden != *filter.Hidden {
			continue
		}
		out = append(out, artist)
	}
	return paginate(out, page), nil
}

func (r *ArtistStore) Get(_ context.Context, id string) (model.Artist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	artist, ok := r.s.artists[id]
	if !ok {
		return model.Artist{}, model.ErrNotFound
	}
	return artist, nil
}

func (r *ArtistStore) Create(_ context.Context, artist model.Artist) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.artists[artist.ID]; ok {
		return model.ErrDuplicate
	}
	r.s.artists[artist.ID] = artist
	return nil
}

func (r *ArtistStore) Update(_ context.Context, id string, patch model.ArtistPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	artist, ok := r.s.artists[id]
	if !ok {
		return model.ErrNotFound
	}
	if patch.Name != nil {
		artist.Name = *patch.Name
	}
	if patch.Grammy != nil {
		artist.Grammy = *patch.Grammy
	}
	if patch.Hidden != nil {
		artist.Hidden = *patch.Hidden
	}
	artist.UpdatedAt = time.Now().UTC()
	r.s.artists[id] = artist
	return nil
}

// Delete refuses while albums or tracks still point at the artist.
func (r *ArtistStore) Delete(_ context.Context, id string) (model.Artist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	artist, ok := r.s.artists[id]
	if !ok {
		return model.Artist{}, model.ErrNotFound
	}
	for _, album := range r.s.albums {
		if album.ArtistID == id {
			return model.Artist{}, model.ErrReferenced
		}
	}
	for _, track := range r.s.tracks {
		if track.ArtistID == id {
			return model.Artist{}, model.ErrReferenced
		}
	}

	delete(r.s.artists, id)
	target := model.ArtistTarget(id)
	r.s.removeFavoritesLocked(func(f model.Favorite) bool { return f.Target == target })
	return artist, nil
}

type AlbumStore struct {
	s *Store
}

func (r *AlbumStore) List(_ context.Context, filter model.AlbumFilter, page model.Page) ([]model.Album, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := sortedValues(r.s.albums, func(a model.Album) time.Time { return a.CreatedAt }, func(a model.Album) string { return a.ID })
	out := all[:0]
	for _, album := range all {
		if filter.ArtistID != nil && album.ArtistID != *filter.ArtistID {
			continue
		}
		if filter.Hidden != nil && album.Hidden != *filter.Hidden {
			continue
		}
		out = append(out, r.populateLocked(album))
	}
	return paginate(out, page), nil
}

func (r *AlbumStore) Get(_ context.Context, id string) (model.Album, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	album, ok := r.s.albums[id]
	if !ok {
		return model.Album{}, model.ErrNotFound
	}
	return r.populateLocked(album), nil
}

func (r *AlbumStore) Create(_ context.Context, album model.Album) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.artists[album.ArtistID]; !ok {
		return model.ErrNotFound
	}
	if _, ok := r.s.albums[album.ID]; ok {
		return model.ErrDuplicate
	}
	album.ArtistName = ""
	r.s.albums[album.ID] = album
	return nil
}

func (r *AlbumStore) Update(_ context.Context, id string, patch model.AlbumPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	album, ok := r.s.albums[id]
	if !ok {
		return model.ErrNotFound
	}
	if patch.ArtistID != nil {
		if _, ok := r.s.artists[*patch.ArtistID]; !ok {
			return model.ErrNotFound
		}
		album.ArtistID = *patch.ArtistID
	}
	if patch.Name != nil {
		album.Name = *patch.Name
	}
	if patch.Year != nil {
		album.Year = *patch.Year
	}
	if patch.Hidden != nil {
		album.Hidden = *patch.Hidden
	}
	album.UpdatedAt = time.Now().UTC()
	r.s.albums[id] = album
	return nil
}

func (r *AlbumStore) Delete(_ context.Context, id string) (model.Album, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	album, ok := r.s.albums[id]
	if !ok {
		return model.Album{}, model.ErrNotFound
	}
	for _, track := range r.s.tracks {
		if track.AlbumID == id {
			return model.Album{}, model.ErrReferenced
		}
	}

	delete(r.s.albums, id)
	target := model.AlbumTarget(id)
	r.s.removeFavoritesLocked(func(f model.Favorite) bool { return f.Target == target })
	return r.populateLocked(album), nil
}

func (r *AlbumStore) populateLocked(album model.Album) model.Album {
	album.ArtistName = r.s.artists[album.ArtistID].Name
	return album
}

type TrackStore struct {
	s *Store
}

func (r *TrackStore) List(_ context.Context, filter model.TrackFilter, page model.Page) ([]model.Track, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := sortedValues(r.s.tracks, func(t model.Track) time.Time { return t.CreatedAt }, func(t model.Track) string { return t.ID })
	out := all[:0]
	for _, track := range all {
		if filter.ArtistID != nil && track.ArtistID != *filter.ArtistID {
			continue
		}
		if filter.AlbumID != nil && track.AlbumID != *filter.AlbumID {
			continue
		}
		if filter.Hidden != nil && track.Hidden != *filter.Hidden {
			continue
		}
		out = append(out, r.populateLocked(track))
	}
	return paginate(out, page), nil
}

func (r *TrackStore) Get(_ context.Context, id string) (model.Track, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	track, ok := r.s.tracks[id]
	if !ok {
		return model.Track{}, model.ErrNotFound
	}
	return r.populateLocked(track), nil
}

func (r *TrackStore) Create(_ context.Context, track model.Track) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.artists[track.ArtistID]; !ok {
		return model.ErrNotFound
	}
	if _, ok := r.s.albums[track.AlbumID]; !ok {
		return model.ErrNotFound
	}
	if _, ok := r.s.tracks[track.ID]; ok {
		return model.ErrDuplicate
	}
	track.ArtistName, track.AlbumName = "", ""
	r.s.tracks[track.ID] = track
	return nil
}

func (r *TrackStore) Update(_ context.Context, id string, patch model.TrackPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	track, ok := r.s.tracks[id]
	if !ok {
		return model.ErrNotFound
	}
	if patch.ArtistID != nil {
		if _, ok := r.s.artists[*patch.ArtistID]; !ok {
			return model.ErrNotFound
		}
		track.ArtistID = *patch.ArtistID
	}
	if patch.AlbumID != nil {
		if _, ok := r.s.albums[*patch.AlbumID]; !ok {
			return model.ErrNotFound
		}
		track.AlbumID = *patch.AlbumID
	}
	if patch.Name != nil {
		track.Name = *patch.Name
	}
	if patch.Duration != nil {
		track.Duration = *patch.Duration
	}
	if patch.Hidden != nil {
		track.Hidden = *patch.Hidden
	}
	track.UpdatedAt = time.Now().UTC()
	r.s.tracks[id] = track
	return nil
}

func (r *TrackStore) Delete(_ context.Context, id string) (model.Track, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	track, ok := r.s.tracks[id]
	if !ok {
		return model.Track{}, model.ErrNotFound
	}

	delete(r.s.tracks, id)
	target := model.TrackTarget(id)
	r.s.removeFavoritesLocked(func(f model.Favorite) bool { return f.Target == target })
	return r.populateLocked(track), nil
}

func (r *TrackStore) populateLocked(track model.Track) model.Track {
	track.ArtistName = r.s.artists[track.ArtistID].Name
	track.AlbumName = r.s.albums[track.AlbumID].Name
	return track
}
