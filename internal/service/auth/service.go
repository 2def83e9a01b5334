package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/bookingapi"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/audit"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/session"
	pkgauth "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/auth"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/metrics"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/security"
)

// BookingAuthAPI is the slice of the booking client the auth flow needs.
type BookingAuthAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (*model.LoginResponse, error)
}

// LoginResult is what the handler returns to the browser: a dashboard token
// plus the operator profile. The remote tokens stay server-side.
type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type Service struct {
	api        BookingAuthAPI
	store      session.Store
	jwt        pkgauth.JWTService
	hasher     security.TokenHasher
	auditor    *audit.Service
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	sessionTTL time.Duration
}

func NewService(
	api BookingAuthAPI,
	store session.Store,
	jwtSvc pkgauth.JWTService,
	hasher security.TokenHasher,
	auditor *audit.Service,
	m *metrics.Metrics,
	logger zerolog.Logger,
	sessionTTL time.Duration,
) *Service {
	return &Service{
		api:        api,
		store:      store,
		jwt:        jwtSvc,
		hasher:     hasher,
		auditor:    auditor,
		metrics:    m,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

// Login authenticates the operator against the booking API and opens a
// dashboard session. Accounts with the CLIENT role are rejected: the remote
// accepts their credentials but the panel is operator-only, so the freshly
// issued remote session is invalidated before the rejection is returned.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (*LoginResult, error) {
	remote, err := s.api.Login(ctx, req)
	if err != nil {
		s.countSessionOp("login", "failure")
		if errors.Is(err, bookingapi.ErrUnauthorized) {
			return nil, apperrors.Unauthorized(err)
		}
		var remoteErr *bookingapi.RemoteError
		if errors.As(err, &remoteErr) && remoteErr.StatusCode < 500 {
			return nil, apperrors.Validation("correo o contraseña incorrectos")
		}
		return nil, apperrors.Remote("login failed", err)
	}

	if remote.User.Role == model.RoleClient {
		s.countSessionOp("login", "rejected_client")
		if err := s.api.Logout(bookingapi.WithToken(ctx, remote.AccessToken)); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate remote session for rejected client login")
		}
		s.auditor.Log(ctx, remote.User, "login_rejected", "session", "", nil)
		return nil, apperrors.Forbidden("esta cuenta no tiene acceso al panel de administración")
	}

	refreshHash, err := s.hasher.Hash(remote.RefreshToken)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := time.Now()
	sess := &session.Session{
		ID:               uuid.NewString(),
		AccessToken:      remote.AccessToken,
		RefreshTokenHash: refreshHash,
		User:             remote.User,
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.store.Set(ctx, sess, s.sessionTTL); err != nil {
		return nil, apperrors.Internal(err)
	}

	token, err := s.jwt.GenerateSessionToken(sess.ID, remote.User.ID, remote.User.Email, remote.User.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.countSessionOp("login", "success")
	s.auditor.Log(ctx, remote.User, "login", "session", sess.ID, nil)
	s.logger.Info().Int64("user_id", remote.User.ID).Str("role", remote.User.Role).Msg("operator logged in")

	return &LoginResult{Token: token, User: remote.User}, nil
}

// Logout invalidates the remote session and drops the local one. The local
// session is cleared even when the remote call fails, so the operator always
// lands back at the login screen.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	sess, err := s.store.Get(ctx, sessionID)
	if err == nil {
		if err := s.api.Logout(bookingapi.WithToken(ctx, sess.AccessToken)); err != nil {
			s.logger.Warn().Err(err).Msg("remote logout failed, clearing local session anyway")
		}
		s.auditor.Log(ctx, sess.User, "logout", "session", sessionID, nil)
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.countSessionOp("logout", "failure")
		return apperrors.Internal(err)
	}
	s.countSessionOp("logout", "success")
	return nil
}

// Refresh rotates the session's remote tokens and re-issues the dashboard
// token, extending the session without another credential prompt. When the
// remote rejects the rotation the session is dead, so it is dropped locally
// and the operator has to log in again.
func (s *Service) Refresh(ctx context.Context, sessionID string) (*LoginResult, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, apperrors.Unauthorized(err)
		}
		return nil, apperrors.Internal(err)
	}

	remote, err := s.api.Refresh(bookingapi.WithToken(ctx, sess.AccessToken))
	if err != nil {
		s.countSessionOp("refresh", "failure")
		if errors.Is(err, bookingapi.ErrUnauthorized) {
			if delErr := s.store.Delete(ctx, sessionID); delErr != nil {
				s.logger.Error().Err(delErr).Str("session_id", sessionID).Msg("failed to drop session after rejected refresh")
			}
			return nil, apperrors.Unauthorized(err)
		}
		return nil, apperrors.Remote("no se pudo renovar la sesión", err)
	}

	sess.AccessToken = remote.AccessToken
	if remote.RefreshToken != "" {
		hash, err := s.hasher.Hash(remote.RefreshToken)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		sess.RefreshTokenHash = hash
	}
	if remote.User != nil {
		sess.User = remote.User
	}
	sess.LastSeenAt = time.Now()

	if err := s.store.Set(ctx, sess, s.sessionTTL); err != nil {
		return nil, apperrors.Internal(err)
	}

	token, err := s.jwt.GenerateSessionToken(sess.ID, sess.User.ID, sess.User.Email, sess.User.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.countSessionOp("refresh", "success")
	return &LoginResult{Token: token, User: sess.User}, nil
}

// Resolve loads the session behind a validated dashboard token.
func (s *Service) Resolve(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, apperrors.Unauthorized(err)
		}
		return nil, apperrors.Internal(err)
	}
	return sess, nil
}

// PurgeSession is wired as the booking client's unauthorized hook. When the
// remote rejects a token mid-request, the backing session is dropped so the
// next request gets a clean 401 instead of retrying a dead token.
func (s *Service) PurgeSession(ctx context.Context) {
	id, ok := session.IDFromContext(ctx)
	if !ok {
		return
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("session_id", id).Msg("failed to purge expired session")
		return
	}
	s.countSessionOp("purge", "success")
	s.logger.Info().Str("session_id", id).Msg("purged session after remote 401")
}

func (s *Service) countSessionOp(op, status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.SessionOperations.WithLabelValues(op, status).Inc()
}
