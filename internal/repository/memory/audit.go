package memory

import (
	"context"
	"slices"

	"music-catalog/internal/model"
)

type AuditStore struct {
	s *Store
}

func (r *AuditStore) Log(_ context.Context, entry model.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.audit = append(r.s.audit, entry)
	return nil
}

// List returns entries newest first.
func (r *AuditStore) List(_ context.Context, filter model.AuditFilter, page model.Page) ([]model.AuditEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.AuditEntry, 0, len(r.s.audit))
	for _, entry := range slices.Backward(r.s.audit) {
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		out = append(out, entry)
	}
	return paginate(out, page), nil
}
