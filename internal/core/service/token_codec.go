package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/coursehub/course-marketplace/internal/core/domain"
	"github.com/coursehub/course-marketplace/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// JWTCodec issues and verifies HS256-signed identity assertions.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *JWTCodec) Issue(userID string, role domain.Role) (string, error) {
	now := c.now()
	claims := &tokenClaims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify collapses every failure mode (bad signature, malformed payload,
// expiry) into domain.ErrInvalidToken so callers cannot tell them apart.
func (c *JWTCodec) Verify(token string) (*ports.TokenClaims, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !tkn.Valid || claims.UserID == "" {
		return nil, domain.ErrInvalidToken
	}
	return &ports.TokenClaims{UserID: claims.UserID, Role: domain.Role(claims.Role)}, nil
}
