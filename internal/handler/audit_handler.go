package handler

import (
	"net/http"

	"music-catalog/internal/model"
	"music-catalog/internal/service"
)

type AuditHandler struct {
	service *service.AuditService
}

func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.service.Query(r.Context(), model.AuditFilter{Action: r.URL.Query().Get("action")}, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, items, "Audit entries retrieved successfully.")
}
