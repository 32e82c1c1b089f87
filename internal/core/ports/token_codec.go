package ports

import "github.com/coursehub/course-marketplace/internal/core/domain"

// TokenClaims is the verified identity assertion carried by a bearer token.
type TokenClaims struct {
	UserID string
	Role   domain.Role
}

// TokenCodec issues and verifies signed, time-limited identity assertions.
type TokenCodec interface {
	Issue(userID string, role domain.Role) (string, error)
	// Verify returns domain.ErrInvalidToken for any failure, whether a bad
	// signature, a malformed payload, or expiry, without distinguishing them.
	Verify(token string) (*TokenClaims, error)
}
