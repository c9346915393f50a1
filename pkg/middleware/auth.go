// Package middleware provides the cookie-JWT authentication gate and the
// role-based authorization predicate shared by all protected routes.
package middleware

import (
	"github.com/carteiralabs/carteira/pkg/config"
	"github.com/carteiralabs/carteira/pkg/domain/user"
	"github.com/carteiralabs/carteira/pkg/service/auth"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimsKey is the fiber locals key under which decoded session claims are
// stored for downstream handlers.
const ClaimsKey = "claims"

// JwtProtected verifies the signed session token in the "jwt" cookie. A
// missing or invalid token redirects to the login page instead of returning a
// JSON error, because every protected route here serves a browser session.
func JwtProtected(cfg config.JwtConfig) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.Secret)},
		TokenLookup: "cookie:jwt",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Redirect("/login", fiber.StatusSeeOther)
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Redirect("/login", fiber.StatusSeeOther)
			}
			claims, err := auth.ClaimsFromToken(token)
			if err != nil {
				return c.Redirect("/login", fiber.StatusSeeOther)
			}
			c.Locals(ClaimsKey, claims)
			return c.Next()
		},
	})
}

// Claims returns the decoded session claims attached by JwtProtected, or nil
// when the request is unauthenticated.
func Claims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsKey).(*auth.Claims)
	return claims
}

// RequireRole authorizes the request when the allow predicate accepts the
// session role, and hands denied requests to the denied handler. One
// middleware covers both page families; only the predicate and the denied
// behavior differ.
func RequireRole(allow func(user.Role) bool, denied fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		if !allow(claims.Role) {
			return denied(c)
		}
		return c.Next()
	}
}

// OrdinaryOnly gates ordinary-user pages; authenticated admins are sent to
// their own landing page.
func OrdinaryOnly() fiber.Handler {
	return RequireRole(
		func(r user.Role) bool { return r != user.RoleAdmin },
		func(c *fiber.Ctx) error {
			return c.Redirect("/adm", fiber.StatusSeeOther)
		},
	)
}

// AdminOnly gates administration pages; ordinary users get a 403.
func AdminOnly() fiber.Handler {
	return RequireRole(
		func(r user.Role) bool { return r == user.RoleAdmin },
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusForbidden)
		},
	)
}
