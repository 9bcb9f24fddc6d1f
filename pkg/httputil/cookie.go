package httputil

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const GameCookieName = "game_token"

// SetGameCookie stores the game token in an http-only cookie.
func SetGameCookie(w http.ResponseWriter, token string, ttl time.Duration, production bool) {
	cookie := &http.Cookie{
		Name:     GameCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   production, // Only require HTTPS in production
	}

	// SameSite=None requires Secure=true, so use Lax for development
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

func ClearGameCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     GameCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// GetTokenFromRequest looks for the game token in the Authorization header, then
// the "token" query parameter (browsers cannot set headers on a WebSocket
// upgrade), then the cookie.
func GetTokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return token, nil
		}
		return authHeader, nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	cookie, err := r.Cookie(GameCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", errors.New("no game token found in header, query or cookie")
}
