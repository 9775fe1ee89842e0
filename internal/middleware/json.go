package middleware

import (
	"encoding/json"
	"net/http"

	"music-catalog/internal/model"
)

// writeEnvelope answers with the API envelope for failures raised before a
// handler runs.
func writeEnvelope(w http.ResponseWriter, status int, message string, errText string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := model.APIResponse{Status: status, Message: message}
	if errText != "" {
		resp.Error = &errText
	}
	_ = json.NewEncoder(w).Encode(resp)
}
