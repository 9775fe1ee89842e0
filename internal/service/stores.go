package service

import (
	"context"

	"music-catalog/internal/model"
)

// UserStore is the credential store. CreateWithBootstrapRole must count the
// existing accounts and insert atomically so that concurrent first signups
// produce exactly one admin.
type UserStore interface {
	CreateWithBootstrapRole(ctx context.Context, user *model.User) error
	Create(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) (model.User, error)
	List(ctx context.Context, filter model.UserFilter, page model.Page) ([]model.User, error)
}

type ArtistStore interface {
	List(ctx context.Context, filter model.ArtistFilter, page model.Page) ([]model.Artist, error)
	Get(ctx context.Context, id string) (model.Artist, error)
	Create(ctx context.Context, artist model.Artist) error
	Update(ctx context.Context, id string, patch model.ArtistPatch) error
	Delete(ctx context.Context, id string) (model.Artist, error)
}

type AlbumStore interface {
	List(ctx context.Context, filter model.AlbumFilter, page model.Page) ([]model.Album, error)
	Get(ctx context.Context, id string) (model.Album, error)
	Create(ctx context.Context, album model.Album) error
	Update(ctx context.Context, id string, patch model.AlbumPatch) error
	Delete(ctx context.Context, id string) (model.Album, error)
}

type TrackStore interface {
	List(ctx context.Context, filter model.TrackFilter, page model.Page) ([]model.Track, error)
	Get(ctx context.Context, id string) (model.Track, error)
	Create(ctx context.Context, track model.Track) error
	Update(ctx context.Context, id string, patch model.TrackPatch) error
	Delete(ctx context.Context, id string) (model.Track, error)
}

// FavoriteStore methods are always scoped by the owning user id.
type FavoriteStore interface {
	List(ctx context.Context, userID string, category model.Category, page model.Page) ([]model.Favorite, error)
	Add(ctx context.Context, favorite model.Favorite) error
	Remove(ctx context.Context, userID string, favoriteID string) error
}

type AuditStore interface {
	Log(ctx context.Context, entry model.AuditEntry) error
	List(ctx context.Context, filter model.AuditFilter, page model.Page) ([]model.AuditEntry, error)
}
