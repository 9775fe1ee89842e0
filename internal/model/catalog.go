package model

import "time"

const (
	DefaultPageLimit = 5
	MaxPageLimit     = 100
)

type Page struct {
	Limit  int
	Offset int
}

type Artist struct {
	ID        string    `json:"artist_id"`
	Name      string    `json:"name"`
	Grammy    int       `json:"grammy"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type ArtistFilter struct {
	Grammy *int
	Hidden *bool
}

type ArtistPatch struct {
	Name   *string
	Grammy *int
	Hidden *bool
}

type Album struct {
	ID         string    `json:"album_id"`
	ArtistID   string    `json:"-"`
	ArtistName string    `json:"artist_name"`
	Name       string    `json:"name"`
	Year       int       `json:"year"`
	Hidden     bool      `json:"hidden"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

type AlbumFilter struct {
	ArtistID *string
	Hidden   *bool
}

type AlbumPatch struct {
	ArtistID *string
	Name     *string
	Year     *int
	Hidden   *bool
}

type Track struct {
	ID         string    `json:"track_id"`
	ArtistID   string    `json:"-"`
	AlbumID    string    `json:"-"`
	ArtistName string    `json:"artist_name"`
	AlbumName  string    `json:"album_name"`
	Name       string    `json:"name"`
	Duration   int       `json:"duration"`
	Hidden     bool      `json:"hidden"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

type TrackFilter struct {
	ArtistID *string
	AlbumID  *string
	Hidden   *bool
}

type TrackPatch struct {
	ArtistID *string
	AlbumID  *string
	Name     *string
	Duration *int
	Hidden   *bool
}
