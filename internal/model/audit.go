package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLog records an operator action taken through the panel.
type AuditLog struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	ActorID    int64           `db:"actor_id" json:"actor_id"`
	ActorEmail string          `db:"actor_email" json:"actor_email"`
	SedeID     *int64          `db:"sede_id" json:"sede_id,omitempty"`
	Action     string          `db:"action" json:"action"`
	EntityType string          `db:"entity_type" json:"entity_type"`
	EntityID   string          `db:"entity_id" json:"entity_id"`
	Metadata   json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	IPAddress  string          `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent  string          `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
