package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestClientIP_Of(t *testing.T) {
	ips, err := NewClientIP([]string{"10.0.0.0/8", "192.168.1.10"})
	require.NoError(t, err)

	cases := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{"untrusted peer ignores header", "203.0.113.9:4000", "1.2.3.4", "203.0.113.9"},
		{"trusted peer without header", "10.1.2.3:4000", "", "10.1.2.3"},
		{"trusted peer forwards client", "10.1.2.3:4000", "198.51.100.7", "198.51.100.7"},
		{"spoofed leftmost hop is skipped", "10.1.2.3:4000", "6.6.6.6, 198.51.100.7", "198.51.100.7"},
		{"trusted hops are walked", "192.168.1.10:80", "198.51.100.7, 10.9.9.9", "198.51.100.7"},
		{"only trusted hops", "10.1.2.3:4000", "10.9.9.9", "10.9.9.9"},
		{"remote without port", "unix-socket", "1.2.3.4", "unix-socket"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			assert.Equal(t, tc.want, ips.Of(req))
		})
	}
}

func TestClientIP_NilTrustsNoOne(t *testing.T) {
	var ips *ClientIP
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:1"
	req.Header.Set("X-Forwarded-For", "1.2.3.4")
	assert.Equal(t, "127.0.0.1", ips.Of(req))
}

func TestNewClientIP_RejectsGarbage(t *testing.T) {
	_, err := NewClientIP([]string{"not-an-ip"})
	assert.Error(t, err)
	_, err = NewClientIP([]string{"10.0.0.0/99"})
	assert.Error(t, err)
}

func TestLimit_RejectsAfterBurst(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(0.001), 2, nil)
	defer rl.Stop()
	h := rl.Limit(http.HandlerFunc(okHandler))

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	codes := []int{send("10.0.0.1:1234").Code, send("10.0.0.1:1234").Code}
	rejected := send("10.0.0.1:1234")
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)
	assert.Equal(t, http.StatusTooManyRequests, rejected.Code)
	assert.NotEmpty(t, rejected.Header().Get("Retry-After"))

	// a different client has its own bucket
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234").Code)
}

func TestLimit_RotatingForwardedForStillLimited(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(0.001), 2, nil)
	defer rl.Stop()
	h := rl.Limit(http.HandlerFunc(okHandler))

	var codes []int
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.50:999"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Set("X-Real-Ip", fmt.Sprintf("192.0.2.%d", i))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestSweep_DropsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1, nil)
	defer rl.Stop()
	now := time.Now()
	rl.reserve("10.0.0.1", now.Add(-2*limiterIdle))
	rl.reserve("10.0.0.2", now)

	rl.sweep(now)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.buckets, "10.0.0.1")
	assert.Contains(t, rl.buckets, "10.0.0.2")
}
