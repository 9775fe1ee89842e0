package model

import "time"

type AuditEntry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
	ActorID    string    `json:"actor_id,omitempty"`
	ActorRole  Role      `json:"actor_role,omitempty"`
	Resource   string    `json:"resource,omitempty"`
}

type AuditFilter struct {
	Action string
}
