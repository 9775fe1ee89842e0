package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"music-catalog/internal/event"
	"music-catalog/internal/model"
	"music-catalog/pkg/apierror"
	"music-catalog/pkg/objectid"
)

const (
	MsgBadRequest      = "bad request"
	MsgArtistNotFound  = "artist not found"
	MsgAlbumNotFound   = "album not found"
	MsgTrackNotFound   = "track not found"
	MsgStillReferenced = "resource is still referenced"
)

// CatalogService manages artists, albums and tracks. Any authenticated
// identity may read and mutate the catalog.
type CatalogService struct {
	artists ArtistStore
	albums  AlbumStore
	tracks  TrackStore
	bus     event.Bus
	now     func() time.Time
}

func NewCatalogService(artists ArtistStore, albums AlbumStore, tracks TrackStore, bus event.Bus) *CatalogService {
	return &CatalogService{artists: artists, albums: albums, tracks: tracks, bus: bus, now: time.Now}
}

func (s *CatalogService) ListArtists(ctx context.Context, filter model.ArtistFilter, page model.Page) ([]model.Artist, error) {
	return s.artists.List(ctx, filter, page)
}

func (s *CatalogService) GetArtist(ctx context.Context, id string) (model.Artist, error) {
	if err := validateID("artist", &id); err != nil {
		return model.Artist{}, err
	}
	artist, err := s.artists.Get(ctx, id)
	return artist, translateStoreError(err, MsgArtistNotFound)
}

func (s *CatalogService) CreateArtist(ctx context.Context, req model.CreateArtistRequest) (model.Artist, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Grammy == nil || req.Hidden == nil {
		return model.Artist{}, apierror.InvalidInput(MsgBadRequest, "missing required fields: name, grammy, or hidden")
	}
	if *req.Grammy < 0 {
		return model.Artist{}, apierror.InvalidInput(MsgBadRequest, "grammy must not be negative")
	}

	now := s.now().UTC()
	artist := model.Artist{
		ID:        objectid.New(),
		Name:      name,
		Grammy:    *req.Grammy,
		Hidden:    *req.Hidden,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.artists.Create(ctx, artist); err != nil {
		return model.Artist{}, fmt.Errorf("create artist: %w", err)
	}
	return artist, nil
}

func (s *CatalogService) UpdateArtist(ctx context.Context, id string, req model.UpdateArtistRequest) error {
	if err := validateID("artist", &id); err != nil {
		return err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return apierror.InvalidInput(MsgBadRequest, "name must not be empty")
	}
	if req.Grammy != nil && *req.Grammy < 0 {
		return apierror.InvalidInput(MsgBadRequest, "grammy must not be negative")
	}

	patch := model.ArtistPatch{Name: trimmed(req.Name), Grammy: req.Grammy, Hidden: req.Hidden}
	return translateStoreError(s.artists.Update(ctx, id, patch), MsgArtistNotFound)
}

func (s *CatalogService) DeleteArtist(ctx context.Context, actor model.Identity, id string) (model.Artist, error) {
	if err := validateID("artist", &id); err != nil {
		return model.Artist{}, err
	}
	artist, err := s.artists.Delete(ctx, id)
	if err != nil {
		return model.Artist{}, translateStoreError(err, MsgArtistNotFound)
	}

	publish(s.bus, event.TypeCatalogItemDeleted, actor, "artist:"+artist.ID)
	return artist, nil
}

func (s *CatalogService) ListAlbums(ctx context.Context, filter model.AlbumFilter, page model.Page) ([]model.Album, error) {
	if filter.ArtistID != nil {
		if err := validateID("artist", filter.ArtistID); err != nil {
			return nil, err
		}
	}
	return s.albums.List(ctx, filter, page)
}

func (s *CatalogService) GetAlbum(ctx context.Context, id string) (model.Album, error) {
	if err := validateID("album", &id); err != nil {
		return model.Album{}, err
	}
	album, err := s.albums.Get(ctx, id)
	return album, translateStoreError(err, MsgAlbumNotFound)
}

func (s *CatalogService) CreateAlbum(ctx context.Context, req model.CreateAlbumRequest) (model.Album, error) {
	name := strings.TrimSpace(req.Name)
	if req.ArtistID == "" || name == "" || req.Year == nil || req.Hidden == nil {
		return model.Album{}, apierror.InvalidInput(MsgBadRequest, "missing required fields: artist_id, name, year, or hidden")
	}
	if err := validateID("artist", &req.ArtistID); err != nil {
		return model.Album{}, err
	}

	artist, err := s.artists.Get(ctx, req.ArtistID)
	if err != nil {
		return model.Album{}, translateStoreError(err, MsgArtistNotFound)
	}

	now := s.now().UTC()
	album := model.Album{
		ID:         objectid.New(),
		ArtistID:   artist.ID,
		ArtistName: artist.Name,
		Name:       name,
		Year:       *req.Year,
		Hidden:     *req.Hidden,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.albums.Create(ctx, album); err != nil {
		return model.Album{}, translateStoreError(err, MsgArtistNotFound)
	}
	return album, nil
}

func (s *CatalogService) UpdateAlbum(ctx context.Context, id string, req model.UpdateAlbumRequest) error {
	if err := validateID("album", &id); err != nil {
		return err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return apierror.InvalidInput(MsgBadRequest, "name must not be empty")
	}
	if req.ArtistID != nil {
		if err := s.requireArtist(ctx, req.ArtistID); err != nil {
			return err
		}
	}

	patch := model.AlbumPatch{ArtistID: req.ArtistID, Name: trimmed(req.Name), Year: req.Year, Hidden: req.Hidden}
	return translateStoreError(s.albums.Update(ctx, id, patch), MsgAlbumNotFound)
}

func (s *CatalogService) DeleteAlbum(ctx context.Context, actor model.Identity, id string) (model.Album, error) {
	if err := validateID("album", &id); err != nil {
		return model.Album{}, err
	}
	album, err := s.albums.Delete(ctx, id)
	if err != nil {
		return model.Album{}, translateStoreError(err, MsgAlbumNotFound)
	}

	publish(s.bus, event.TypeCatalogItemDeleted, actor, "album:"+album.ID)
	return album, nil
}

func (s *CatalogService) ListTracks(ctx context.Context, filter model.TrackFilter, page model.Page) ([]model.Track, error) {
	if filter.ArtistID != nil {
		if err := validateID("artist", filter.ArtistID); err != nil {
			return nil, err
		}
	}
	if filter.AlbumID != nil {
		if err := validateID("album", filter.AlbumID); err != nil {
			return nil, err
		}
	}
	return s.tracks.List(ctx, filter, page)
}

func (s *CatalogService) GetTrack(ctx context.Context, id string) (model.Track, error) {
	if err := validateID("track", &id); err != nil {
		return model.Track{}, err
	}
	track, err := s.tracks.Get(ctx, id)
	return track, translateStoreError(err, MsgTrackNotFound)
}

func (s *CatalogService) CreateTrack(ctx context.Context, req model.CreateTrackRequest) (model.Track, error) {
	name := strings.TrimSpace(req.Name)
	if req.ArtistID == "" || req.AlbumID == "" || name == "" || req.Duration == nil || req.Hidden == nil {
		return model.Track{}, apierror.InvalidInput(MsgBadRequest, "missing required fields: artist_id, album_id, name, duration, or hidden")
	}
	if *req.Duration < 0 {
		return model.Track{}, apierror.InvalidInput(MsgBadRequest, "duration must not be negative")
	}
	if err := validateID("artist", &req.ArtistID); err != nil {
		return model.Track{}, err
	}
	if err := validateID("album", &req.AlbumID); err != nil {
		return model.Track{}, err
	}

	artist, err := s.artists.Get(ctx, req.ArtistID)
	if err != nil {
		return model.Track{}, translateStoreError(err, MsgArtistNotFound)
	}
	album, err := s.albums.Get(ctx, req.AlbumID)
	if err != nil {
		return model.Track{}, translateStoreError(err, MsgAlbumNotFound)
	}

	now := s.now().UTC()
	track := model.Track{
		ID:         objectid.New(),
		ArtistID:   artist.ID,
		AlbumID:    album.ID,
		ArtistName: artist.Name,
		AlbumName:  album.Name,
		Name:       name,
		Duration:   *req.Duration,
		Hidden:     *req.Hidden,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.tracks.Create(ctx, track); err != nil {
		return model.Track{}, translateStoreError(err, "artist or album not found")
	}
	return track, nil
}

func (s *CatalogService) UpdateTrack(ctx context.Context, id string, req model.UpdateTrackRequest) error {
	if err := validateID("track", &id); err != nil {
		return err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return apierror.InvalidInput(MsgBadRequest, "name must not be empty")
	}
	if req.Duration != nil && *req.Duration < 0 {
		return apierror.InvalidInput(MsgBadRequest, "duration must not be negative")
	}
	if req.ArtistID != nil {
		if err := s.requireArtist(ctx, req.ArtistID); err != nil {
			return err
		}
	}
	if req.AlbumID != nil {
		if err := validateID("album", req.AlbumID); err != nil {
			return err
		}
		if _, err := s.albums.Get(ctx, *req.AlbumID); err != nil {
			return translateStoreError(err, MsgAlbumNotFound)
		}
	}

	patch := model.TrackPatch{
		ArtistID: req.ArtistID,
		AlbumID:  req.AlbumID,
		Name:     trimmed(req.Name),
		Duration: req.Duration,
		Hidden:   req.Hidden,
	}
	return translateStoreError(s.tracks.Update(ctx, id, patch), MsgTrackNotFound)
}

func (s *CatalogService) DeleteTrack(ctx context.Context, actor model.Identity, id string) (model.Track, error) {
	if err := validateID("track", &id); err != nil {
		return model.Track{}, err
	}
	track, err := s.tracks.Delete(ctx, id)
	if err != nil {
		return model.Track{}, translateStoreError(err, MsgTrackNotFound)
	}

	publish(s.bus, event.TypeCatalogItemDeleted, actor, "track:"+track.ID)
	return track, nil
}

func (s *CatalogService) requireArtist(ctx context.Context, id *string) error {
	if err := validateID("artist", id); err != nil {
		return err
	}
	_, err := s.artists.Get(ctx, *id)
	return translateStoreError(err, MsgArtistNotFound)
}

// validateID checks the id shape and rewrites it to its canonical lowercase form.
func validateID(resource string, id *string) error {
	canonical, ok := objectid.Normalize(*id)
	if !ok {
		return apierror.InvalidInput(MsgBadRequest, fmt.Sprintf("invalid %s ID format", resource))
	}
	*id = canonical
	return nil
}

// translateStoreError maps store sentinels to API errors. Unknown errors pass
// through and end up as an opaque server error.
func translateStoreError(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrNotFound):
		return apierror.NotFound(notFound, "")
	case errors.Is(err, model.ErrReferenced):
		return apierror.Conflict(MsgStillReferenced, "delete the albums and tracks that reference it first")
	case errors.Is(err, model.ErrDuplicate):
		return apierror.Conflict("resource already exists", "")
	default:
		return err
	}
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	out := strings.TrimSpace(*value)
	return &out
}
