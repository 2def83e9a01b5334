package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/audit"
	authservice "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/auth"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/session"
	pkgauth "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/auth"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/security"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, pkgauth.JWTService, session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore(time.Minute)
	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	authSvc := authservice.NewService(
		nil, store, jwtSvc, security.NewBcryptHasher(4),
		audit.NewService(nil, zerolog.Nop()), nil, zerolog.Nop(), time.Hour,
	)

	engine := gin.New()
	engine.Use(NewAuthMiddleware(jwtSvc, authSvc).Authenticate())
	engine.GET("/protected", func(c *gin.Context) {
		sess, ok := SessionFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": sess.User.ID, "session_id": SessionID(c)})
	})
	return engine, jwtSvc, store
}

func TestAuthenticateMissingHeader(t *testing.T) {
	engine, _, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	engine, _, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateValidSession(t *testing.T) {
	engine, jwtSvc, store := newAuthTestRouter(t)

	sess := &session.Session{
		ID:          "sess-1",
		AccessToken: "remote-token",
		User:        &model.User{ID: 7, Email: "admin@salon.test", Role: model.RoleBranchAdmin},
	}
	require.NoError(t, store.Set(context.Background(), sess, time.Minute))

	token, err := jwtSvc.GenerateSessionToken("sess-1", 7, "admin@salon.test", model.RoleBranchAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"session_id":"sess-1"`)
}

func TestAuthenticatePurgedSession(t *testing.T) {
	engine, jwtSvc, _ := newAuthTestRouter(t)

	// Token is valid but no session backs it.
	token, err := jwtSvc.GenerateSessionToken("gone", 7, "admin@salon.test", model.RoleBranchAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
