package mw

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"workshop-backend/internal/auth"
	"workshop-backend/internal/model"
	"workshop-backend/internal/workorder"
)

type providerFunc func(ctx context.Context, token string) (workorder.Actor, error)

func (f providerFunc) Resolve(ctx context.Context, token string) (workorder.Actor, error) {
	return f(ctx, token)
}

func setupAuthRouter(p auth.IdentityProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Authenticate(p))
	r.GET("/whoami", func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, fmt.Sprintf("%d:%s", actor.ID, actor.Role))
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	provider := providerFunc(func(_ context.Context, token string) (workorder.Actor, error) {
		switch token {
		case "good":
			return workorder.Actor{ID: 7, Role: model.RoleTechnician}, nil
		case "broken":
			return workorder.Actor{}, errors.New("db down")
		}
		return workorder.Actor{}, fmt.Errorf("%w: bad token", auth.ErrUnauthorized)
	})
	router := setupAuthRouter(provider)

	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer good", http.StatusOK, "7:TECHNICIAN"},
		{"lowercase scheme", "bearer good", http.StatusOK, "7:TECHNICIAN"},
		{"missing header", "", http.StatusUnauthorized, `{"error":"missing bearer token"}`},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, `{"error":"missing bearer token"}`},
		{"rejected token", "Bearer nope", http.StatusUnauthorized, `{"error":"invalid or expired token"}`},
		{"lookup failure", "Bearer broken", http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantBody, w.Body.String())
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}
}

func TestRequestID_KeepsCallerID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewIPRateLimiter(rate.Limit(1), 2)
	r := gin.New()
	r.Use(RateLimiter(limiter))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIPRateLimiter_DropsIdleVisitors(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	now := time.Now()
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))
	assert.Equal(t, 2, limiter.Len())

	now = now.Add(limiterIdleTTL + time.Minute)
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.Equal(t, 1, limiter.Len())
}
