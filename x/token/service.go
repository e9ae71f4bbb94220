// Package token issues and validates the bearer tokens handed out at login.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"github.com/rs/xid"

	"github.com/pokecamp/backend/x/core"
	"github.com/pokecamp/backend/x/util"
)

// Claims is the token payload. It carries just enough identity for the
// authorization decision: the account id and its role.
type Claims struct {
	UserID uint      `json:"userId"`
	Role   core.Role `json:"tipo_usuario"`
	jwt.RegisteredClaims
}

// Service is the interface for the token service
type Service interface {
	Issue(trainer core.Trainer) (string, error)
	Validate(tokenString string) (Claims, error)
}

type service struct {
	config util.Config
}

// NewService creates a new token service
func NewService(config util.Config) Service {
	return &service{config: config}
}

// Issue creates a signed token for the given trainer
func (s *service) Issue(trainer core.Trainer) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: trainer.ID,
		Role:   trainer.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pokecamp",
			Subject:   trainer.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.config.Site.TokenExpiryHours) * time.Hour)),
			ID:        xid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Site.JwtSecret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate parses and verifies a token string
func (s *service) Validate(tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.Site.JwtSecret), nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	return claims, nil
}
