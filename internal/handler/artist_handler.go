package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"music-catalog/internal/model"
	"music-catalog/internal/service"
)

type ArtistHandler struct {
	service *service.CatalogService
}

func NewArtistHandler(service *service.CatalogService) *ArtistHandler {
	return &ArtistHandler{service: service}
}

func (h *ArtistHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var filter model.ArtistFilter
	if filter.Grammy, err = queryInt(r, "grammy"); err != nil {
		writeError(w, r, err)
		return
	}
	if filter.Hidden, err = queryBool(r, "hidden"); err != nil {
		writeError(w, r, err)
		return
	}

	artists, err := h.service.ListArtists(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, artists, "Artists retrieved successfully.")
}

func (h *ArtistHandler) Get(w http.ResponseWriter, r *http.Request) {
	artist, err := h.service.GetArtist(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, artist, "Artist retrieved successfully.")
}

func (h *ArtistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateArtistRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.service.CreateArtist(r.Context(), payload); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, nil, "Artist created successfully.")
}

func (h *ArtistHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateArtistRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.UpdateArtist(r.Context(), chi.URLParam(r, "id"), payload); err != nil {
		writeError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *ArtistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := identityOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	artist, err := h.service.DeleteArtist(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"artist_id": artist.ID},
		fmt.Sprintf("Artist: %s deleted successfully.", artist.Name))
}
