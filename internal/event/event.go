package event

type Type string

const (
	TypeUserSignedUp       Type = "user.signed_up"
	TypeUserCreated        Type = "user.created"
	TypeUserDeleted        Type = "user.deleted"
	TypePasswordChanged    Type = "user.password_changed"
	TypeSessionStarted     Type = "session.started"
	TypeSessionRevoked     Type = "session.revoked"
	TypeFavoriteAdded      Type = "favorite.added"
	TypeFavoriteRemoved    Type = "favorite.removed"
	TypeCatalogItemDeleted Type = "catalog.item_deleted"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Resource  string `json:"resource,omitempty"`
	Timestamp string `json:"timestamp"`
	ActorID   string `json:"actor_id,omitempty"`
	ActorRole string `json:"actor_role,omitempty"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func())
}
