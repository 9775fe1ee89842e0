package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"music-catalog/internal/model"
	"music-catalog/internal/service"
)

type AlbumHandler struct {
	service *service.CatalogService
}

func NewAlbumHandler(service *service.CatalogService) *AlbumHandler {
	return &AlbumHandler{service: service}
}

func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter := model.AlbumFilter{ArtistID: queryString(r, "artist_id")}
	if filter.Hidden, err = queryBool(r, "hidden"); err != nil {
		writeError(w, r, err)
		return
	}

	albums, err := h.service.ListAlbums(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, albums, "Albums retrieved successfully.")
}

func (h *AlbumHandler) Get(w http.ResponseWriter, r *http.Request) {
	album, err := h.service.GetAlbum(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, album, "Album retrieved successfully.")
}

func (h *AlbumHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateAlbumRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.service.CreateAlbum(r.Context(), payload); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, nil, "Album created successfully.")
}

func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateAlbumRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.UpdateAlbum(r.Context(), chi.URLParam(r, "id"), payload); err != nil {
		writeError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *AlbumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := identityOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	album, err := h.service.DeleteAlbum(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"album_id": album.ID},
		fmt.Sprintf("Album: %s deleted successfully.", album.Name))
}
