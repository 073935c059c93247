package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"heatshield/internal/model"
)

// MockRevocationStore is a mock implementation of RevocationStore.
type MockRevocationStore struct {
	mock.Mock
}

func (m *MockRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, tokenID string) bool {
	args := m.Called(ctx, tokenID)
	return args.Bool(0)
}

func newProtectedEcho(svc *JWTService, store RevocationStore) *echo.Echo {
	e := echo.New()
	g := e.Group("/api", Middleware(svc, store))
	g.GET("/whoami", func(c echo.Context) error {
		id, err := UserIDFrom(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, id.String())
	})
	return e
}

func TestMiddleware(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	token, err := svc.GenerateAccessToken(9)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		revoked    bool
		wantStatus int
		wantBody   string
	}{
		{"valid", "Bearer " + token, false, http.StatusOK, "9"},
		{"missing header", "", false, http.StatusUnauthorized, "invalid or expired token"},
		{"wrong scheme", "Basic " + token, false, http.StatusUnauthorized, "invalid or expired token"},
		{"malformed", "Bearer abc.def", false, http.StatusUnauthorized, "invalid or expired token"},
		{"revoked", "Bearer " + token, true, http.StatusUnauthorized, "invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockRevocationStore)
			store.On("IsRevoked", mock.Anything, mock.Anything).Return(tt.revoked).Maybe()
			e := newProtectedEcho(svc, store)

			req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestUserIDFrom_MissingIdentity(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := UserIDFrom(c)
	assert.Error(t, err)

	WithIdentity(c, &Identity{UserID: model.UserID(3)})
	id, err := UserIDFrom(c)
	require.NoError(t, err)
	assert.Equal(t, model.UserID(3), id)
}

func TestRedisRevocationStore_NilCache(t *testing.T) {
	store := NewRevocationStore(nil)
	ctx := context.Background()

	assert.NoError(t, store.Revoke(ctx, "jti", time.Minute))
	assert.False(t, store.IsRevoked(ctx, "jti"))
	assert.False(t, store.IsRevoked(ctx, ""))
}
