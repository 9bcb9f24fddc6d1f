package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CongDon1207/Four-Connect/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware([]string{"http://localhost:5173"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	tests := []struct {
		name   string
		method string
		origin string
		status int
	}{
		{"no origin", http.MethodGet, "", http.StatusNoContent},
		{"allowed", http.MethodGet, "http://localhost:5173", http.StatusNoContent},
		{"preflight", http.MethodOptions, "http://localhost:5173", http.StatusOK},
		{"rejected", http.MethodGet, "http://evil.example", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/x", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusForbidden && tt.origin != "" {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestGameAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	router := gin.New()
	router.GET("/games/:id", GameAuthMiddleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(GameIDKey))
	})

	token, err := tokens.GenerateGameToken("g1")
	require.NoError(t, err)

	do := func(path, authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := do("/games/g1", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "g1", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do("/games/g1", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do("/games/g1", "Bearer nope").Code)
	assert.Equal(t, http.StatusUnauthorized, do("/games/g2", "Bearer "+token).Code)
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware(), RequestLogger())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
