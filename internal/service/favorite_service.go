package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"music-catalog/internal/event"
	"music-catalog/internal/model"
	"music-catalog/pkg/apierror"
	"music-catalog/pkg/objectid"
)

const (
	MsgFavoriteExists   = "favorite already exists"
	MsgFavoriteNotFound = "favorite not found"
	MsgResourceNotFound = "resource not found"
)

// FavoriteService scopes every operation to the calling identity. A favorite
// owned by someone else is reported as not found.
type FavoriteService struct {
	favorites FavoriteStore
	artists   ArtistStore
	albums    AlbumStore
	tracks    TrackStore
	bus       event.Bus
	now       func() time.Time
}

func NewFavoriteService(favorites FavoriteStore, artists ArtistStore, albums AlbumStore, tracks TrackStore, bus event.Bus) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		artists:   artists,
		albums:    albums,
		tracks:    tracks,
		bus:       bus,
		now:       time.Now,
	}
}

func (s *FavoriteService) List(ctx context.Context, identity model.Identity, rawCategory string, page model.Page) ([]model.FavoriteView, error) {
	category, ok := model.ParseCategory(rawCategory)
	if !ok {
		return nil, apierror.InvalidInput(MsgBadRequest, "invalid category")
	}

	favorites, err := s.favorites.List(ctx, identity.UserID, category, page)
	if err != nil {
		return nil, err
	}

	out := make([]model.FavoriteView, 0, len(favorites))
	for _, favorite := range favorites {
		out = append(out, favorite.View())
	}
	return out, nil
}

func (s *FavoriteService) Add(ctx context.Context, identity model.Identity, rawCategory string, itemID string) (model.Favorite, error) {
	category, ok := model.ParseCategory(rawCategory)
	if !ok {
		return model.Favorite{}, apierror.InvalidInput(MsgBadRequest, "invalid category")
	}
	itemID, ok = objectid.Normalize(itemID)
	if !ok {
		return model.Favorite{}, apierror.InvalidInput(MsgBadRequest, "invalid item ID format")
	}

	target, _ := model.NewFavoriteTarget(category, itemID)
	name, err := s.itemName(ctx, target)
	if err != nil {
		return model.Favorite{}, err
	}

	favorite := model.Favorite{
		ID:        objectid.New(),
		UserID:    identity.UserID,
		Target:    target,
		ItemName:  name,
		CreatedAt: s.now().UTC(),
	}

	if err := s.favorites.Add(ctx, favorite); err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicate):
			return model.Favorite{}, apierror.Conflict(MsgFavoriteExists, "")
		case errors.Is(err, model.ErrNotFound):
			return model.Favorite{}, apierror.NotFound(MsgResourceNotFound, "")
		default:
			return model.Favorite{}, fmt.Errorf("add favorite: %w", err)
		}
	}

	publish(s.bus, event.TypeFavoriteAdded, identity, favorite.ID)
	return favorite, nil
}

func (s *FavoriteService) Remove(ctx context.Context, identity model.Identity, favoriteID string) error {
	favoriteID, ok := objectid.Normalize(favoriteID)
	if !ok {
		return apierror.InvalidInput(MsgBadRequest, "invalid favorite ID format")
	}

	if err := s.favorites.Remove(ctx, identity.UserID, favoriteID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierror.NotFound(MsgFavoriteNotFound, "")
		}
		return fmt.Errorf("remove favorite: %w", err)
	}

	publish(s.bus, event.TypeFavoriteRemoved, identity, favoriteID)
	return nil
}

func (s *FavoriteService) itemName(ctx context.Context, target model.FavoriteTarget) (string, error) {
	var (
		name string
		err  error
	)

	switch target.Category() {
	case model.CategoryArtist:
		var artist model.Artist
		artist, err = s.artists.Get(ctx, target.ItemID())
		name = artist.Name
	case model.CategoryAlbum:
		var album model.Album
		album, err = s.albums.Get(ctx, target.ItemID())
		name = album.Name
	case model.CategoryTrack:
		var track model.Track
		track, err = s.tracks.Get(ctx, target.ItemID())
		name = track.Name
	default:
		return "", apierror.InvalidInput(MsgBadRequest, "invalid category")
	}

	if errors.Is(err, model.ErrNotFound) {
		return "", apierror.NotFound(MsgResourceNotFound, "")
	}
	return name, err
}
