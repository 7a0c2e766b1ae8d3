package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clothing-shop/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier map[string]string

func (s stubVerifier) VerifyToken(token string) (string, error) {
	if identity, ok := s[token]; ok {
		return identity, nil
	}
	return "", errors.New("bad token")
}

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func identityHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentityFromContext(r.Context())
	w.Write([]byte(identity))
}

func TestJWTAuth(t *testing.T) {
	h := JWTAuth(stubVerifier{"good": "a@x.com"}, zap.NewNop())(http.HandlerFunc(identityHandler))

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"Missing", "", http.StatusUnauthorized, ""},
		{"WrongScheme", "Basic good", http.StatusUnauthorized, ""},
		{"BadToken", "Bearer tampered", http.StatusUnauthorized, ""},
		{"Valid", "Bearer good", http.StatusOK, "a@x.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("Blocked", func(t *testing.T) {
		limiter := new(MockLimiter)
		limiter.On("Allow", mock.Anything, "login:10.0.0.1").Return(false, nil).Once()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()

		RateLimit(limiter, "login", zap.NewNop())(ok).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		limiter.AssertExpectations(t)
	})

	t.Run("Allowed", func(t *testing.T) {
		limiter := new(MockLimiter)
		limiter.On("Allow", mock.Anything, mock.AnythingOfType("string")).Return(true, nil)
		rec := httptest.NewRecorder()

		RateLimit(limiter, "login", zap.NewNop())(ok).
			ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		limiter.AssertNumberOfCalls(t, "Allow", 1)
	})

	t.Run("FailOpen", func(t *testing.T) {
		limiter := new(MockLimiter)
		limiter.On("Allow", mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
		rec := httptest.NewRecorder()

		RateLimit(limiter, "login", zap.NewNop())(ok).
			ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRecover(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	rec := httptest.NewRecorder()

	Recover(zap.NewNop())(panicky).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}

func TestLoggerSetsRequestID(t *testing.T) {
	var seen string
	h := Logger(zap.NewNop())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = utils.GetRequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc", seen)
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/x", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodPost, "unmatched", "201")))
}
