package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/bookingapi"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/audit"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/session"
	pkgauth "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/auth"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/security"
)

type fakeAuthAPI struct {
	loginResp   *model.LoginResponse
	loginErr    error
	logoutErr   error
	logoutHits  int
	refreshResp *model.LoginResponse
	refreshErr  error
}

func (f *fakeAuthAPI) Login(_ context.Context, _ model.LoginRequest) (*model.LoginResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAuthAPI) Logout(_ context.Context) error {
	f.logoutHits++
	return f.logoutErr
}

func (f *fakeAuthAPI) Refresh(_ context.Context) (*model.LoginResponse, error) {
	return f.refreshResp, f.refreshErr
}

func newTestService(api *fakeAuthAPI) (*Service, session.Store) {
	store := session.NewMemoryStore(time.Minute)
	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	hasher := security.NewBcryptHasher(4)
	auditor := audit.NewService(nil, zerolog.Nop())
	svc := NewService(api, store, jwtSvc, hasher, auditor, nil, zerolog.Nop(), time.Hour)
	return svc, store
}

func operatorResponse(role string) *model.LoginResponse {
	return &model.LoginResponse{
		AccessToken:  "remote-token",
		RefreshToken: "remote-refresh",
		User:         &model.User{ID: 7, Email: "admin@salon.test", Role: role},
	}
}

func TestLoginOpensSession(t *testing.T) {
	api := &fakeAuthAPI{loginResp: operatorResponse(model.RoleBranchAdmin)}
	svc, store := newTestService(api)

	result, err := svc.Login(context.Background(), model.LoginRequest{Email: "admin@salon.test", Password: "x"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, int64(7), result.User.ID)

	// A session now backs the token, holding the remote access token.
	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	claims, err := jwtSvc.ValidateSessionToken(result.Token)
	require.NoError(t, err)

	sess, err := store.Get(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "remote-token", sess.AccessToken)
	assert.NotEqual(t, "remote-refresh", sess.RefreshTokenHash)
	assert.NotEmpty(t, sess.RefreshTokenHash)
}

func TestLoginRejectsClientRole(t *testing.T) {
	api := &fakeAuthAPI{loginResp: operatorResponse(model.RoleClient)}
	svc, _ := newTestService(api)

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "client@salon.test", Password: "x"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	// The remote session issued for the client must be invalidated.
	assert.Equal(t, 1, api.logoutHits)
}

func TestLoginBadCredentials(t *testing.T) {
	api := &fakeAuthAPI{loginErr: &bookingapi.RemoteError{StatusCode: 400, Message: "bad credentials"}}
	svc, _ := newTestService(api)

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "x@y.z", Password: "wrong"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestLoginRemoteDown(t *testing.T) {
	api := &fakeAuthAPI{loginErr: &bookingapi.RemoteError{StatusCode: 503, Message: "unavailable"}}
	svc, _ := newTestService(api)

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "x@y.z", Password: "x"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrRemote, appErr.Code)
}

func TestLogoutClearsSessionEvenWhenRemoteFails(t *testing.T) {
	api := &fakeAuthAPI{loginResp: operatorResponse(model.RoleCompanyAdmin), logoutErr: bookingapi.ErrInternal}
	svc, store := newTestService(api)

	result, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	claims, err := jwtSvc.ValidateSessionToken(result.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims.SessionID))

	_, err = store.Get(context.Background(), claims.SessionID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestPurgeSession(t *testing.T) {
	api := &fakeAuthAPI{loginResp: operatorResponse(model.RoleSuperAdmin)}
	svc, store := newTestService(api)

	result, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	claims, err := jwtSvc.ValidateSessionToken(result.Token)
	require.NoError(t, err)

	ctx := session.WithSessionID(context.Background(), claims.SessionID)
	svc.PurgeSession(ctx)

	_, err = store.Get(context.Background(), claims.SessionID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRefreshRotatesTokens(t *testing.T) {
	api := &fakeAuthAPI{
		loginResp: operatorResponse(model.RoleBranchAdmin),
		refreshResp: &model.LoginResponse{
			AccessToken:  "remote-token-2",
			RefreshToken: "remote-refresh-2",
		},
	}
	svc, store := newTestService(api)

	result, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	claims, err := jwtSvc.ValidateSessionToken(result.Token)
	require.NoError(t, err)

	before, err := store.Get(context.Background(), claims.SessionID)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), claims.SessionID)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.Token)
	assert.Equal(t, int64(7), refreshed.User.ID)

	after, err := store.Get(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "remote-token-2", after.AccessToken)
	assert.NotEqual(t, before.RefreshTokenHash, after.RefreshTokenHash)
}

func TestRefreshRejectedDropsSession(t *testing.T) {
	api := &fakeAuthAPI{
		loginResp:  operatorResponse(model.RoleBranchAdmin),
		refreshErr: bookingapi.ErrUnauthorized,
	}
	svc, store := newTestService(api)

	result, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	claims, err := jwtSvc.ValidateSessionToken(result.Token)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), claims.SessionID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)

	_, err = store.Get(context.Background(), claims.SessionID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestResolveMissingSession(t *testing.T) {
	svc, _ := newTestService(&fakeAuthAPI{})

	_, err := svc.Resolve(context.Background(), "missing")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}
