package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/httputil"
)

func newLimitedRouter(config RateLimiterConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(NewRateLimiter(config).RateLimit())
	engine.POST("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, httputil.Response{Success: true})
	})
	return engine
}

func hit(engine *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitBlocksBurstOverflow(t *testing.T) {
	engine := newLimitedRouter(RateLimiterConfig{Rate: rate.Limit(0.001), Burst: 2})

	assert.Equal(t, http.StatusOK, hit(engine))
	assert.Equal(t, http.StatusOK, hit(engine))
	assert.Equal(t, http.StatusTooManyRequests, hit(engine))
}

func TestRateLimitIdleEntriesExpire(t *testing.T) {
	engine := newLimitedRouter(RateLimiterConfig{
		Rate:    rate.Limit(0.001),
		Burst:   1,
		IdleTTL: 20 * time.Millisecond,
	})

	assert.Equal(t, http.StatusOK, hit(engine))
	assert.Equal(t, http.StatusTooManyRequests, hit(engine))

	// Once the entry expires, the client gets a fresh limiter.
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, http.StatusOK, hit(engine))
}
