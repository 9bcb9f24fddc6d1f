package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// GameClaims binds a token to one game session. Whoever holds the token may
// play that game.
type GameClaims struct {
	GameID string `json:"game_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and checks game tokens with a shared HMAC secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateGameToken creates a token for gameID that expires after the issuer's TTL.
func (ti *TokenIssuer) GenerateGameToken(gameID string) (string, error) {
	now := ti.now()
	claims := &GameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   gameID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// ValidateGameToken checks the signature and expiry of a token and returns its claims.
func (ti *TokenIssuer) ValidateGameToken(tokenString string) (*GameClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GameClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return ti.secret, nil
	}, jwt.WithTimeFunc(ti.now))

	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*GameClaims); ok && token.Valid && claims.GameID != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
