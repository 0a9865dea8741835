package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sauravsingh6568/paonflowers-sub000/internal/apperr"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/auth"
)

// SessionCookie is the cookie a browser client may carry the session token in,
// as an alternative to the Authorization header.
const SessionCookie = "session_token"

// TokenAuth validates the session token from the Authorization header or the
// session cookie and stores the authenticated user id in the request locals.
func TokenAuth(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := ""
		if authz := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			tokenStr = strings.TrimSpace(authz[len("Bearer "):])
		}
		if tokenStr == "" {
			tokenStr = c.Cookies(SessionCookie)
		}
		if tokenStr == "" {
			return apperr.Unauthorized("missing credentials")
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			return apperr.Unauthorized("invalid or expired token")
		}

		c.Locals(auth.LocalsUserID, claims.UserID)
		c.Locals("role", string(claims.Role))
		return c.Next()
	}
}
