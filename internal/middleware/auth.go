package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/bookingapi"
	authservice "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/auth"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/session"
	pkgauth "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/auth"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/httputil"
)

const (
	// SessionContextKey holds the resolved *session.Session in gin's keys.
	SessionContextKey = "session"
	// SessionIDContextKey holds the session id string.
	SessionIDContextKey = "session_id"
)

type AuthMiddleware struct {
	jwt     pkgauth.JWTService
	authSvc *authservice.Service
}

func NewAuthMiddleware(jwt pkgauth.JWTService, authSvc *authservice.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, authSvc: authSvc}
}

// Authenticate validates the dashboard token, resolves the backing session,
// and equips the request context with the remote access token so every
// downstream booking API call is authenticated. Expired dashboard tokens and
// purged sessions both land here as a 401.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := m.jwt.ValidateSessionToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid session token")
			return
		}

		ctx := session.WithSessionID(c.Request.Context(), claims.SessionID)
		sess, err := m.authSvc.Resolve(ctx, claims.SessionID)
		if err != nil {
			abortUnauthorized(c, "session expired")
			return
		}

		ctx = bookingapi.WithToken(ctx, sess.AccessToken)
		c.Request = c.Request.WithContext(ctx)
		c.Set(SessionContextKey, sess)
		c.Set(SessionIDContextKey, claims.SessionID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
		Success: false,
		Error:   &httputil.Error{Code: http.StatusUnauthorized, Message: message},
	})
}

// SessionFromContext returns the session placed by Authenticate.
func SessionFromContext(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(SessionContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

// SessionID returns the session id placed by Authenticate.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDContextKey)
}
