package model

// APIResponse is the envelope every endpoint answers with. Status mirrors the
// HTTP status line.
type APIResponse struct {
	Status  int     `json:"status"`
	Data    any     `json:"data"`
	Message string  `json:"message"`
	Error   *string `json:"error"`
}
