package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"music-catalog/internal/model"
	"music-catalog/internal/service"
)

type TrackHandler struct {
	service *service.CatalogService
}

func NewTrackHandler(service *service.CatalogService) *TrackHandler {
	return &TrackHandler{service: service}
}

func (h *TrackHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter := model.TrackFilter{
		ArtistID: queryString(r, "artist_id"),
		AlbumID:  queryString(r, "album_id"),
	}
	if filter.Hidden, err = queryBool(r, "hidden"); err != nil {
		writeError(w, r, err)
		return
	}

	tracks, err := h.service.ListTracks(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, tracks, "Tracks retrieved successfully.")
}

func (h *TrackHandler) Get(w http.ResponseWriter, r *http.Request) {
	track, err := h.service.GetTrack(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, track, "Track retrieved successfully.")
}

func (h *TrackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateTrackRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.service.CreateTrack(r.Context(), payload); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, nil, "Track created successfully.")
}

func (h *TrackHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateTrackRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.UpdateTrack(r.Context(), chi.URLParam(r, "id"), payload); err != nil {
		writeError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *TrackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := identityOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	track, err := h.service.DeleteTrack(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"track_id": track.ID},
		fmt.Sprintf("Track: %s deleted successfully.", track.Name))
}
