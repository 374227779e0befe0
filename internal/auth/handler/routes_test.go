package handler_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/password"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/studypath-auth/internal/errors"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/logger"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/metrics"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type routeDeps struct {
	repo   *mocks.MockUserRepository
	cache  *mocks.MockSessionCache
	tokens *mocks.MockTokenGenerator
	app    *fiber.App
}

func newRouteDeps(t *testing.T) *routeDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := &routeDeps{
		repo:   mocks.NewMockUserRepository(ctrl),
		cache:  mocks.NewMockSessionCache(ctrl),
		tokens: mocks.NewMockTokenGenerator(ctrl),
	}

	reg := prometheus.NewRegistry()
	recorder := metrics.NewCollector(reg)
	userService := service.NewUserService(d.repo, password.NewBcryptHasher(bcrypt.MinCost), d.tokens, d.cache, logger.Discard(), recorder)
	authHandler := handler.NewAuthHandler(userService, d.tokens, time.Second)
	healthHandler := handler.NewHealthHandler(d.repo, d.cache)

	d.app = fiber.New()
	handler.RegisterRoutes(d.app, authHandler, healthHandler, reg)
	return d
}

// TestRegisterRoutes verifies that the public routes are mounted.
func TestRegisterRoutes(t *testing.T) {
	d := newRouteDeps(t)
	d.repo.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()
	d.cache.EXPECT().IsAvailable(gomock.Any()).Return(false).AnyTimes()
	d.tokens.EXPECT().VerifyToken(gomock.Any()).Return(nil, autherror.ErrTokenMalformed).AnyTimes()

	testCases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/auth/register"},
		{http.MethodPost, "/api/auth/login"},
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/metrics"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s_%s_exists", tc.method, tc.path), func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			resp, err := d.app.Test(req)
			require.NoError(t, err)

			// Handlers may reject the empty request; a 404 means the route is missing.
			assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestRequireAuthMiddleware(t *testing.T) {
	d := newRouteDeps(t)
	meRoute := "/api/auth/me"

	get := func(authorization string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, meRoute, nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		resp, err := d.app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("fails without auth header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get("").StatusCode)
	})

	t.Run("fails with malformed header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get("BearerInvalidToken").StatusCode)
		assert.Equal(t, http.StatusUnauthorized, get("Bearer ").StatusCode)
	})

	t.Run("fails with expired token", func(t *testing.T) {
		d.tokens.EXPECT().VerifyToken("expired-token").Return(nil, autherror.ErrTokenExpired)
		assert.Equal(t, http.StatusUnauthorized, get("Bearer expired-token").StatusCode)
	})

	t.Run("fails when the account is gone", func(t *testing.T) {
		d.tokens.EXPECT().VerifyToken("orphan-token").Return(&service.JWTCustomClaims{UserID: "user-404"}, nil)
		d.repo.EXPECT().GetByID(gomock.Any(), "user-404").Return(nil, nil)

		assert.Equal(t, http.StatusNotFound, get("Bearer orphan-token").StatusCode)
	})

	t.Run("succeeds with a valid token", func(t *testing.T) {
		user := domain.NewUser("user-123", "test@example.com", "$2a$04$hash", "Test User", time.Now())
		d.tokens.EXPECT().VerifyToken("good-token").Return(&service.JWTCustomClaims{
			UserID: user.ID,
			Email:  user.Email,
			Role:   string(user.Role),
		}, nil)
		d.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

		resp := get("Bearer good-token")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		me, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "test@example.com", me["email"])
		assert.NotContains(t, me, "password_hash")
	})
}

func TestHealth(t *testing.T) {
	t.Run("healthy without cache", func(t *testing.T) {
		d := newRouteDeps(t)
		d.repo.EXPECT().Ping(gomock.Any()).Return(nil)
		d.cache.EXPECT().IsAvailable(gomock.Any()).Return(false)

		resp, err := d.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		services, ok := body["services"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "healthy", services["database"])
		assert.Equal(t, "unhealthy", services["redis"])
		assert.Contains(t, body, "uptime")
		assert.Contains(t, body, "timestamp")
	})

	t.Run("database down", func(t *testing.T) {
		d := newRouteDeps(t)
		d.repo.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
		d.cache.EXPECT().IsAvailable(gomock.Any()).Return(true)

		resp, err := d.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		body := decodeBody(t, resp)
		services := body["services"].(map[string]any)
		assert.Equal(t, "unhealthy", services["database"])
		assert.Equal(t, "healthy", services["redis"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	d := newRouteDeps(t)

	// A failed login shows up in the exposition.
	resp, _ := postJSON(t, d.app, "/api/auth/login", map[string]string{"email": "", "password": ""})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err := d.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `studypath_auth_requests_total{operation="login",result="failure"} 1`)
}
