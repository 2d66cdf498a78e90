package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

const identityKey = "auth_identity"

// Gate authenticates requests from bearer tokens. Claims are used as-is;
// the credential store is not consulted on gated requests.
type Gate struct {
	tokens *TokenManager
}

// NewGate constructs the access gate.
func NewGate(tokens *TokenManager) *Gate {
	return &Gate{tokens: tokens}
}

// Authenticate extracts and verifies the bearer token from an
// Authorization header value, returning the caller identity or a
// DomainError describing the 401.
func (g *Gate) Authenticate(authHeader string) (domain.Identity, error) {
	token, ok := extractBearer(authHeader)
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthorized("Access token required")
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return domain.Identity{}, apperrors.NewUnauthorized("Invalid or expired token")
	}
	return claims.Identity(), nil
}

// RequireAuth enforces authentication for protected routes and stores the
// identity for the handler.
func (g *Gate) RequireAuth(c *fiber.Ctx) error {
	identity, err := g.Authenticate(c.Get("Authorization"))
	if err != nil {
		return err
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// RequireAdmin enforces authentication plus the administrator role.
func (g *Gate) RequireAdmin(c *fiber.Ctx) error {
	identity, err := g.Authenticate(c.Get("Authorization"))
	if err != nil {
		return err
	}
	if !identity.IsAdmin() {
		return apperrors.NewForbidden("Admin access required")
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}

func extractBearer(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
