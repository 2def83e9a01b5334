package repository

import (
	"context"
	"time"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
)

// AuditRepository stores the operator action trail. The trail is local to
// the panel; the booking API never sees it.
type AuditRepository interface {
	Create(ctx context.Context, log *model.AuditLog) error
	List(ctx context.Context, filters map[string]interface{}) ([]*model.AuditLog, error)
	Cleanup(ctx context.Context, before time.Time) (int64, error)
}
