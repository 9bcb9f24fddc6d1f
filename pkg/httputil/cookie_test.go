package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/games/1", nil)
	_, err := GetTokenFromRequest(r)
	assert.Error(t, err)

	r.AddCookie(&http.Cookie{Name: GameCookieName, Value: "from-cookie"})
	token, err := GetTokenFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", token)

	r = httptest.NewRequest(http.MethodGet, "/ws?token=from-query", nil)
	token, err = GetTokenFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "from-query", token)

	r.Header.Set("Authorization", "Bearer from-header")
	token, err = GetTokenFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "from-header", token)
}

func TestSetGameCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetGameCookie(w, "abc", time.Hour, false)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, GameCookieName, cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}
