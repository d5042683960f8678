package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"greengrass/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAdminAuth(t *testing.T) {
	const secret = "test_secret"

	adminToken, err := IssueToken(secret, "owner@greengrass.ae", RoleAdmin, time.Hour)
	require.NoError(t, err)
	customerToken, err := IssueToken(secret, "shopper", "customer", time.Hour)
	require.NoError(t, err)
	expiredToken, err := IssueToken(secret, "owner", RoleAdmin, -time.Hour)
	require.NoError(t, err)
	otherSecret, err := IssueToken("other", "owner", RoleAdmin, time.Hour)
	require.NoError(t, err)
	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"role": RoleAdmin}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "authorization header is required"},
		{"not bearer", "Token abc", http.StatusUnauthorized, "bearer token not found"},
		{"garbage token", "Bearer invalid.token.signature", http.StatusForbidden, "Invalid or expired token"},
		{"expired", "Bearer " + expiredToken, http.StatusForbidden, "Invalid or expired token"},
		{"wrong secret", "Bearer " + otherSecret, http.StatusForbidden, "Invalid or expired token"},
		{"alg none", "Bearer " + noneToken, http.StatusForbidden, "Invalid or expired token"},
		{"not admin", "Bearer " + customerToken, http.StatusForbidden, "Forbidden: Admins only"},
		{"admin", "Bearer " + adminToken, http.StatusOK, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", AdminAuth(secret, logger.Nop()), func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://greengrassstore.com"}))
	r.GET("/api/v1/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	req.Header.Set("Origin", "https://greengrassstore.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://greengrassstore.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryReturnsJSON(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.Nop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestRecoveryDropsBrokenConnections(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.Nop()))
	r.GET("/gone", func(c *gin.Context) {
		panic(&net.OpError{Op: "write", Net: "tcp", Err: os.NewSyscallError("write", syscall.EPIPE)})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gone", nil))
	assert.NotEqual(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestMetrics(t *testing.T) {
	m := NewMetrics("test")
	r := gin.New()
	r.Use(Logger(logger.Nop()), m.Middleware())
	r.GET("/api/v1/products/:slug", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products/ficus", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `route="/api/v1/products/:slug"`))
	assert.True(t, strings.Contains(body, `route="unmatched"`))
	assert.Contains(t, body, "http_request_duration_seconds")
}
