package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"music-catalog/internal/middleware"
	"music-catalog/internal/model"
	"music-catalog/pkg/apierror"
)

const maxBodyBytes = 1 << 20

func writeSuccess(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Status:  status,
		Data:    data,
		Message: message,
	})
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// writeError renders classified errors with their status and hides
// everything else behind an opaque 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "server error"
	var details *string

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) && apiErr.Kind != apierror.KindInternal {
		status = apiErr.HTTPStatus
		message = apiErr.Message
		if apiErr.Details != "" {
			details = &apiErr.Details
		}
	} else {
		slog.Error("unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Status:  status,
		Message: message,
		Error:   details,
	})
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apierror.InvalidInput("bad request", "request body is required")
		}
		return apierror.InvalidInput("bad request", "invalid JSON body")
	}
	return nil
}

// parsePage reads limit and offset. Zero or absent values take the defaults
// and limit is capped.
func parsePage(r *http.Request) (model.Page, error) {
	query := r.URL.Query()
	page := model.Page{Limit: model.DefaultPageLimit}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return model.Page{}, apierror.InvalidInput("bad request", "limit must be a non-negative integer")
		}
		if limit > 0 {
			page.Limit = min(limit, model.MaxPageLimit)
		}
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return model.Page{}, apierror.InvalidInput("bad request", "offset must be a non-negative integer")
		}
		page.Offset = offset
	}

	return page, nil
}

func queryInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apierror.InvalidInput("bad request", key+" must be an integer")
	}
	return &value, nil
}

func queryBool(r *http.Request, key string) (*bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apierror.InvalidInput("bad request", key+" must be true or false")
	}
	return &value, nil
}

func queryString(r *http.Request, key string) *string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	return &raw
}

// identityOf returns the caller attached by RequireAuth.
func identityOf(r *http.Request) (model.Identity, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return model.Identity{}, apierror.Unauthenticated(middleware.MsgUnauthorized)
	}
	return *identity, nil
}
