package auth

import (
	"strings"
	"time"

	"chat-relay/domain"
	errs "chat-relay/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Config carries the signing material for the gate. It is built at
// startup and injected, so tests can run with distinct secrets.
type Config struct {
	Secret        []byte
	TokenDuration time.Duration
}

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Gate verifies bearer credentials presented at connection time.
type Gate struct {
	secret        []byte
	tokenDuration time.Duration
}

func NewGate(cfg Config) *Gate {
	return &Gate{secret: cfg.Secret, tokenDuration: cfg.TokenDuration}
}

// GenerateToken creates a signed JWT for a specific user.
func (g *Gate) GenerateToken(userID, username string) (string, error) {
	expirationTime := time.Now().Add(g.tokenDuration)

	claims := &CustomClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "chat-relay",
		},
	}

	// HS256 (HMAC with SHA256), signed with the shared secret.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// ValidateToken parses and validates the signature and expiration of a JWT string.
func (g *Gate) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return g.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

// Authenticate gates a connection attempt. An absent credential and a
// malformed, expired or forged one are both terminal for the attempt:
// no session state exists yet at this point.
func (g *Gate) Authenticate(raw string) (domain.Identity, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if raw == "" {
		return domain.Identity{}, errs.ErrMissingCredential
	}
	claims, err := g.ValidateToken(raw)
	if err != nil {
		return domain.Identity{}, errs.ErrInvalidCredential
	}
	return domain.Identity{ID: claims.UserID, Username: claims.Username}, nil
}
