package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CongDon1207/Four-Connect/pkg/auth"
	"github.com/CongDon1207/Four-Connect/pkg/httputil"
)

// GameIDKey is the gin context key holding the game id proven by the token.
const GameIDKey = "game_id"

// GameAuthMiddleware lets a request through only when it carries a valid game
// token issued for the game named by the :id route parameter.
func GameAuthMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := tokens.ValidateGameToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if claims.GameID != c.Param("id") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token does not belong to this game"})
			return
		}

		c.Set(GameIDKey, claims.GameID)
		c.Next()
	}
}
