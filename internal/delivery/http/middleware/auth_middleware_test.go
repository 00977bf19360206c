package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deringirish/PHMS/config"
	"github.com/deringirish/PHMS/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "middleware-test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func TestAuthenticateRejects(t *testing.T) {
	jwtService := newTestJWT()
	m := NewAuthMiddleware(jwtService, nil)

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})

	refreshToken, _, err := jwtService.GenerateRefreshToken(uuid.New(), "dr.house")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"Missing Header", ""},
		{"Wrong Scheme", "Basic abc"},
		{"Too Many Parts", "Bearer a b"},
		{"Garbage Token", "Bearer not-a-jwt"},
		{"Refresh Token Used As Access", "Bearer " + refreshToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, reached)
		})
	}
}

func TestContextHelpers(t *testing.T) {
	t.Run("Admin Round Trip", func(t *testing.T) {
		id := uuid.New()
		ctx := WithAdmin(context.Background(), id, "dr.house")

		gotID, ok := GetAdminIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, id, gotID)

		userID, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "dr.house", userID)
	})

	t.Run("Empty Context", func(t *testing.T) {
		_, ok := GetAdminIDFromContext(context.Background())
		assert.False(t, ok)
		_, ok = GetTokenIDFromContext(context.Background())
		assert.False(t, ok)
	})
}

func TestCORSPreflight(t *testing.T) {
	m := NewCORSMiddleware([]string{"https://clinic.example"})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/patients", nil)
	req.Header.Set("Origin", "https://clinic.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
