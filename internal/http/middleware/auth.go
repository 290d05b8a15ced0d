package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"drives3/internal/model"
	"drives3/internal/service"
)

// UserLocalKey holds the authenticated *model.User in Fiber locals.
const UserLocalKey = "user"

// Resolver maps a bearer token to its user.
type Resolver interface {
	Resolve(ctx context.Context, bearer string) (*model.User, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token
// with 401 and stores the resolved user under UserLocalKey.
func RequireAuth(r Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := r.Resolve(c.UserContext(), BearerToken(c))
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid or missing bearer token")
			}
			return err
		}
		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// BearerToken extracts the token from the Authorization header, or "".
func BearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	const prefix = "bearer "
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}
