package model

import "time"

type Category string

const (
	CategoryArtist Category = "artist"
	CategoryAlbum  Category = "album"
	CategoryTrack  Category = "track"
)

func ParseCategory(raw string) (Category, bool) {
	switch Category(raw) {
	case CategoryArtist, CategoryAlbum, CategoryTrack:
		return Category(raw), true
	default:
		return "", false
	}
}

// FavoriteTarget references exactly one artist, album or track. The zero
// value references nothing; build targets with the constructors below.
type FavoriteTarget struct {
	category Category
	itemID   string
}

func ArtistTarget(id string) FavoriteTarget { return FavoriteTarget{category: CategoryArtist, itemID: id} }
func AlbumTarget(id string) FavoriteTarget  { return FavoriteTarget{category: CategoryAlbum, itemID: id} }
func TrackTarget(id string) FavoriteTarget  { return FavoriteTarget{category: CategoryTrack, itemID: id} }

func NewFavoriteTarget(category Category, itemID string) (FavoriteTarget, bool) {
	switch category {
	case CategoryArtist:
		return ArtistTarget(itemID), true
	case CategoryAlbum:
		return AlbumTarget(itemID), true
	case CategoryTrack:
		return TrackTarget(itemID), true
	default:
		return FavoriteTarget{}, false
	}
}

func (t FavoriteTarget) Category() Category { return t.category }
func (t FavoriteTarget) ItemID() string     { return t.itemID }
func (t FavoriteTarget) IsZero() bool       { return t.category == "" }

type Favorite struct {
	ID        string
	UserID    string
	Target    FavoriteTarget
	ItemName  string
	CreatedAt time.Time
}

type FavoriteView struct {
	FavoriteID string    `json:"favorite_id"`
	Category   Category  `json:"category"`
	ItemID     string    `json:"item_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

func (f Favorite) View() FavoriteView {
	return FavoriteView{
		FavoriteID: f.ID,
		Category:   f.Target.Category(),
		ItemID:     f.Target.ItemID(),
		Name:       f.ItemName,
		CreatedAt:  f.CreatedAt,
	}
}
