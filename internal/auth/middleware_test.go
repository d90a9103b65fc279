package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newProbeRouter(tm *TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", RequireToken(tm), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": SubjectFromContext(c)})
	})
	return r
}

func TestRequireToken_MissingHeader(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret"), time.Hour)
	r := newProbeRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireToken_InvalidToken(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret"), time.Hour)
	r := newProbeRouter(tm)

	for _, header := range []string{"Bearer garbage", "Basic abc", "Bearer "} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireToken_ValidToken(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret"), time.Hour)
	r := newProbeRouter(tm)

	tok, err := tm.Issue("ann@x.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ann@x.com")
}

func TestRequireAdminKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/gated", RequireAdminKey("s3cret"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.DELETE("/disabled", RequireAdminKey(""), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name   string
		path   string
		key    string
		status int
	}{
		{"no key", "/gated", "", http.StatusForbidden},
		{"wrong key", "/gated", "nope", http.StatusForbidden},
		{"right key", "/gated", "s3cret", http.StatusOK},
		{"route disabled", "/disabled", "s3cret", http.StatusForbidden},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, tc.path, nil)
		if tc.key != "" {
			req.Header.Set("X-Admin-Key", tc.key)
		}
		r.ServeHTTP(w, req)
		require.Equal(t, tc.status, w.Code, tc.name)
	}
}
