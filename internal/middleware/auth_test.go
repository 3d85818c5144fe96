package middleware

import (
	"cohort_backend/internal/config"
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(cfg *config.JWTConfig) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(cfg), RoleMiddleware(model.Staff), func(c *gin.Context) {
		c.String(http.StatusOK, util.OperatorID(c))
	})
	return r
}

func signed(t *testing.T, claims *util.Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.JWTConfig{Secret: testSecret}
	staffToken, err := util.GenerateJWT("user-1", model.Staff, "staff@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	adminToken, err := util.GenerateJWT("user-2", model.Admin, "admin@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	studentToken, err := util.GenerateJWT("user-3", model.Student, "student@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	expiredToken, err := util.GenerateJWT("user-1", model.Staff, "staff@example.com", testSecret, -time.Minute)
	require.NoError(t, err)
	foreignToken, err := util.GenerateJWT("user-1", model.Staff, "staff@example.com", "another-secret-another-secret-00", time.Hour)
	require.NoError(t, err)

	metadataClaims := &util.Claims{
		Role:             "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-4", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	metadataClaims.AppMetadata.Role = model.Staff
	metadataToken := signed(t, metadataClaims, testSecret)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"no header", "", http.StatusUnauthorized, ""},
		{"staff", "Bearer " + staffToken, http.StatusOK, "user-1"},
		{"admin passes", "Bearer " + adminToken, http.StatusOK, "user-2"},
		{"student forbidden", "Bearer " + studentToken, http.StatusForbidden, `{"code":403,"message":"permission denied"}`},
		{"expired", "Bearer " + expiredToken, http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + foreignToken, http.StatusUnauthorized, ""},
		{"role from app metadata", "Bearer " + metadataToken, http.StatusOK, "user-4"},
	}

	r := newProtectedRouter(cfg)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_Issuer(t *testing.T) {
	cfg := &config.JWTConfig{Secret: testSecret, Issuer: "https://auth.example.com/auth/v1"}
	r := newProtectedRouter(cfg)

	claims := &util.Claims{
		Role: model.Staff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "https://auth.example.com/auth/v1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	good := signed(t, claims, testSecret)
	claims.Issuer = "https://evil.example.com"
	bad := signed(t, claims, testSecret)

	for token, want := range map[string]int{good: http.StatusOK, bad: http.StatusUnauthorized} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Basic dXNlcjpwYXNz", "", false},
		{"Bearer ", "", false},
		{"abc.def.ghi", "", false},
	}

	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}
