package limiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestMiddleware_RejectsOverBurst(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewIPRateLimiter(ctx, rate.Limit(0.001), 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		r := httptest.NewRequest(http.MethodPost, "/participants", nil)
		r.RemoteAddr = "198.51.100.7:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		codes = append(codes, rec.Code)
	}

	req.Equal([]int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodPost, "/participants", nil)
	other.RemoteAddr = "198.51.100.8:4000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	req.Equal(http.StatusCreated, rec.Code)
}

func TestPrune_DropsOnlyFullBuckets(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewIPRateLimiter(ctx, rate.Limit(0.001), 1)
	l.GetLimiter("10.0.0.1")
	l.GetLimiter("10.0.0.2").Allow()

	removed, remaining := l.prune(time.Now())

	req.Equal(1, removed)
	req.Equal(1, remaining)
	req.Contains(l.limits, "10.0.0.2")
}
