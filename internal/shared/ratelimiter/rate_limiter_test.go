package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFixedWindow_Allow(t *testing.T) {
	t.Run("admits up to the maximum within a window", func(t *testing.T) {
		l := NewFixedWindow(5, time.Minute)

		for i := 0; i < 5; i++ {
			assert.True(t, l.Allow("1.2.3.4"), "call %d should be allowed", i+1)
		}
		assert.False(t, l.Allow("1.2.3.4"), "6th call should be rejected")
		assert.False(t, l.Allow("1.2.3.4"), "rejections continue for the window")
	})

	t.Run("keys are independent", func(t *testing.T) {
		l := NewFixedWindow(1, time.Minute)

		assert.True(t, l.Allow("1.2.3.4"))
		assert.False(t, l.Allow("1.2.3.4"))
		assert.True(t, l.Allow("5.6.7.8"), "a different key has its own bucket")
	})

	t.Run("window elapse resets the bucket", func(t *testing.T) {
		now := time.Now()
		l := NewFixedWindow(2, time.Minute)
		l.now = func() time.Time { return now }

		assert.True(t, l.Allow("1.2.3.4"))
		assert.True(t, l.Allow("1.2.3.4"))
		assert.False(t, l.Allow("1.2.3.4"))

		// Advance past the window; the bucket restarts as if new.
		now = now.Add(time.Minute + time.Second)
		assert.True(t, l.Allow("1.2.3.4"), "fresh window should admit with count 1")
		assert.True(t, l.Allow("1.2.3.4"))
		assert.False(t, l.Allow("1.2.3.4"))
	})

	t.Run("rejection does not consume window state", func(t *testing.T) {
		now := time.Now()
		l := NewFixedWindow(1, time.Minute)
		l.now = func() time.Time { return now }

		assert.True(t, l.Allow("1.2.3.4"))
		for i := 0; i < 10; i++ {
			assert.False(t, l.Allow("1.2.3.4"))
		}

		now = now.Add(time.Minute)
		assert.True(t, l.Allow("1.2.3.4"), "rejected calls must not extend the window")
	})
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Middleware(NewFixedWindow(2, time.Minute)))
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do(), "third request should be rejected")
}
