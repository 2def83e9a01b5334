package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/repository"
)

// Service records the operator action trail. Audit failures are logged and
// swallowed so a broken trail never blocks the action itself.
type Service struct {
	repo   repository.AuditRepository
	logger zerolog.Logger
}

func NewService(repo repository.AuditRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type LogOptions struct {
	Metadata  interface{}
	IPAddress string
	UserAgent string
}

// Log records one operator action. actor may carry a nil profile for
// pre-login actions.
func (s *Service) Log(ctx context.Context, actor *model.User, action, entityType, entityID string, opts *LogOptions) {
	if s.repo == nil {
		return
	}

	entry := &model.AuditLog{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
	}
	if actor != nil {
		entry.ActorID = actor.ID
		entry.ActorEmail = actor.Email
		if sedeID, ok := actor.SedeID(); ok {
			entry.SedeID = &sedeID
		}
	}
	if opts != nil {
		entry.IPAddress = opts.IPAddress
		entry.UserAgent = opts.UserAgent
		if opts.Metadata != nil {
			metadata, err := json.Marshal(opts.Metadata)
			if err != nil {
				s.logger.Error().Err(err).Str("action", action).Msg("failed to marshal audit metadata")
			} else {
				entry.Metadata = metadata
			}
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("action", action).Str("entity_type", entityType).Msg("failed to write audit log")
	}
}

// List returns recent trail entries. Without a database the trail is empty
// rather than an error, matching how Log degrades.
func (s *Service) List(ctx context.Context, filters map[string]interface{}) ([]*model.AuditLog, error) {
	if s.repo == nil {
		return []*model.AuditLog{}, nil
	}
	return s.repo.List(ctx, filters)
}

// Cleanup drops entries older than the retention window.
func (s *Service) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	if s.repo == nil {
		return 0, nil
	}
	return s.repo.Cleanup(ctx, time.Now().Add(-retention))
}
