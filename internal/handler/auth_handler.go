package handler

import (
	"net/http"

	"music-catalog/internal/middleware"
	"music-catalog/internal/model"
	"music-catalog/internal/service"
	"music-catalog/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload model.CredentialsRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.service.Signup(r.Context(), payload.Email, payload.Password); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, nil, "User created successfully.")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.CredentialsRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, session, "Login successful.")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, r, apierror.InvalidInput("bad request", "token is required"))
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "User logged out successfully.")
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, err := identityOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.UpdatePasswordRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.UpdatePassword(r.Context(), identity, payload.OldPassword, payload.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	writeNoContent(w)
}
