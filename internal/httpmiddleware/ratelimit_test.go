package httpmiddleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhausts(t *testing.T) {
	l := NewTokenBucket(3, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(ctx, "alice"), "request %d inside capacity", i)
	}
	assert.False(t, l.Allow(ctx, "alice"))

	// Other keys keep their own buckets.
	assert.True(t, l.Allow(ctx, "bob"))
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) bool { return false }

type allowAll struct{}

func (allowAll) Allow(context.Context, string) bool { return true }

func TestGinMiddlewareRejectsWith429(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(GinMiddleware(denyAll{}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGinMiddlewarePassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(GinMiddleware(allowAll{}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

type captureKey struct {
	key string
}

func (c *captureKey) Allow(_ context.Context, key string) bool {
	c.key = key
	return true
}

func TestGinMiddlewareKeysByLecturerWhenAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := &captureKey{}
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("lecturer_id", stubID("lecturer-42")) })
	r.Use(GinMiddleware(limiter))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lecturer-42", limiter.key)
}

type stubID string

func (s stubID) String() string { return string(s) }
