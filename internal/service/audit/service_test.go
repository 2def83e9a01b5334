package audit

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
)

type fakeAuditRepo struct {
	entries    []*model.AuditLog
	lastBefore time.Time
}

func (f *fakeAuditRepo) Create(_ context.Context, log *model.AuditLog) error {
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeAuditRepo) List(context.Context, map[string]interface{}) ([]*model.AuditLog, error) {
	return f.entries, nil
}

func (f *fakeAuditRepo) Cleanup(_ context.Context, before time.Time) (int64, error) {
	f.lastBefore = before
	return int64(len(f.entries)), nil
}

func TestLogRecordsActorAndMetadata(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewService(repo, zerolog.Nop())

	sede := int64(12)
	actor := &model.User{
		ID: 7, Email: "admin@salon.test", Role: model.RoleBranchAdmin,
		AdminProfile: &model.AdminProfile{CompanyID: 2, SedeID: &sede},
	}
	svc.Log(context.Background(), actor, "appointment_cancelled", "appointment", "42", &LogOptions{
		Metadata: map[string]interface{}{"reason": "cliente no asistió"},
	})

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, int64(7), entry.ActorID)
	assert.Equal(t, "appointment_cancelled", entry.Action)
	require.NotNil(t, entry.SedeID)
	assert.Equal(t, int64(12), *entry.SedeID)
	assert.Contains(t, string(entry.Metadata), "cliente no asistió")
}

func TestWithoutDatabaseAllOperationsDegrade(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())

	svc.Log(context.Background(), &model.User{ID: 7}, "login", "session", "s1", nil)

	entries, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, entries)

	dropped, err := svc.Cleanup(context.Background(), 90*24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, dropped)
}

func TestCleanupUsesRetentionWindow(t *testing.T) {
	repo := &fakeAuditRepo{entries: []*model.AuditLog{{Action: "login"}}}
	svc := NewService(repo, zerolog.Nop())

	dropped, err := svc.Cleanup(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dropped)

	// The cutoff sits one retention window in the past.
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), repo.lastBefore, time.Minute)
}
