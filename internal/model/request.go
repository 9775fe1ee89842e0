package model

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type CreateArtistRequest struct {
	Name   string `json:"name"`
	Grammy *int   `json:"grammy"`
	Hidden *bool  `json:"hidden"`
}

type UpdateArtistRequest struct {
	Name   *string `json:"name"`
	Grammy *int    `json:"grammy"`
	Hidden *bool   `json:"hidden"`
}

type CreateAlbumRequest struct {
	ArtistID string `json:"artist_id"`
	Name     string `json:"name"`
	Year     *int   `json:"year"`
	Hidden   *bool  `json:"hidden"`
}

type UpdateAlbumRequest struct {
	ArtistID *string `json:"artist_id"`
	Name     *string `json:"name"`
	Year     *int    `json:"year"`
	Hidden   *bool   `json:"hidden"`
}

type CreateTrackRequest struct {
	ArtistID string `json:"artist_id"`
	AlbumID  string `json:"album_id"`
	Name     string `json:"name"`
	Duration *int   `json:"duration"`
	Hidden   *bool  `json:"hidden"`
}

type UpdateTrackRequest struct {
	ArtistID *string `json:"artist_id"`
	AlbumID  *string `json:"album_id"`
	Name     *string `json:"name"`
	Duration *int    `json:"duration"`
	Hidden   *bool   `json:"hidden"`
}

type AddFavoriteRequest struct {
	Category string `json:"category"`
	ItemID   string `json:"item_id"`
}
