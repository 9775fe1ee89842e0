package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"music-catalog/internal/model"
	"music-catalog/internal/service"
)

type FavoriteHandler struct {
	service *service.FavoriteService
}

func NewFavoriteHandler(service *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, err := identityOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	favorites, err := h.service.List(r.Context(), identity, chi.URLParam(r, "category"), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, favorites, "Favorites retrieved successfully.")
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity, err := identityOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.AddFavoriteRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.service.Add(r.Context(), identity, payload.Category, payload.ItemID); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, nil, "Favorite added successfully.")
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	identity, err := identityOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.Remove(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "Favorite removed successfully.")
}
