package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"music-catalog/internal/model"
	"music-catalog/internal/service"
	"music-catalog/pkg/apierror"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
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

	var filter model.UserFilter
	if raw := r.URL.Query().Get("role"); raw != "" {
		role, ok := model.ParseRole(raw)
		if !ok {
			writeError(w, r, apierror.InvalidInput("bad request", "role must be Admin, Editor or Viewer"))
			return
		}
		filter.Role = &role
	}

	users, err := h.service.List(r.Context(), identity, filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, users, "Users retrieved successfully.")
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := identityOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.CreateUserRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.service.Create(r.Context(), identity, payload.Email, payload.Password, payload.Role); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, nil, "User created successfully.")
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := identityOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.service.Delete(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, fmt.Sprintf("User: %s deleted successfully.", user.Email))
}
