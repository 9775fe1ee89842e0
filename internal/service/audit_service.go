package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"music-catalog/internal/event"
	"music-catalog/internal/model"
	"music-catalog/pkg/objectid"
)

type AuditService struct {
	store AuditStore
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

// Run persists every event published on bus until ctx is cancelled or the
// subscription is closed.
func (s *AuditService) Run(ctx context.Context, bus event.Bus) {
	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			if err := s.Log(ctx, evt); err != nil {
				slog.Error("failed to persist audit entry", "type", evt.Type, "error", err)
			}
		}
	}
}

func (s *AuditService) Log(ctx context.Context, evt event.Event) error {
	if s == nil {
		return nil
	}

	entry := model.AuditEntry{
		ID:         objectid.New(),
		Action:     string(evt.Type),
		OccurredAt: parseAuditTime(evt.Timestamp),
		ActorID:    evt.ActorID,
		ActorRole:  model.Role(evt.ActorRole),
		Resource:   evt.Resource,
	}

	return s.store.Log(ctx, entry)
}

// Query lists entries newest first.
func (s *AuditService) Query(ctx context.Context, filter model.AuditFilter, page model.Page) ([]model.AuditEntry, error) {
	filter.Action = strings.ToLower(strings.TrimSpace(filter.Action))
	return s.store.List(ctx, filter, page)
}

func parseAuditTime(raw string) time.Time {
	if value, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return value.UTC()
	}
	return time.Now().UTC()
}
