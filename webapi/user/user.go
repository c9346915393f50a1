// Package user exposes the account moderation API and recipient resolution.
package user

import (
	"github.com/carteiralabs/carteira/pkg/config"
	"github.com/carteiralabs/carteira/pkg/middleware"
	usersvc "github.com/carteiralabs/carteira/pkg/service/user"
	"github.com/carteiralabs/carteira/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers user moderation and lookup routes.
//
//   - GET /user/api/approve/:email        : approve a pending account (admin).
//   - GET /user/api/block/:email          : block an account (admin).
//   - GET /user/api/findNameKeyBen/:key   : resolve a transfer recipient's name.
func Routes(app *fiber.App, userSvc *usersvc.Service, cfg *config.AppConfig) {
	app.Get("/user/api/approve/:email",
		middleware.JwtProtected(cfg.Jwt), middleware.AdminOnly(), Approve(userSvc))
	app.Get("/user/api/block/:email",
		middleware.JwtProtected(cfg.Jwt), middleware.AdminOnly(), Block(userSvc))
	app.Get("/user/api/findNameKeyBen/:key",
		middleware.JwtProtected(cfg.Jwt), middleware.OrdinaryOnly(), RecipientName(userSvc))
}

// Approve moves an account out of waitingForApproval. Approving an account a
// second time fails, as does an unknown email.
func Approve(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Params("email")
		if err := userSvc.Approve(c.Context(), email); err != nil {
			log.Warnf("approve failed for %s: %v", email, err)
			return common.ProblemDetailsJSON(c, "Couldn't approve account", err, "No account found or status already set")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account approved", true)
	}
}

// Block puts an account into the blocked status.
func Block(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Params("email")
		if err := userSvc.Block(c.Context(), email); err != nil {
			log.Warnf("block failed for %s: %v", email, err)
			return common.ProblemDetailsJSON(c, "Couldn't block account", err, "No account found or status already set")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account blocked", true)
	}
}

// RecipientName resolves the display name for a transfer recipient given an
// email or document key.
func RecipientName(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.Claims(c)
		name, err := userSvc.RecipientName(c.Context(), c.Params("key"), claims.Document)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't resolve recipient", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Recipient found", fiber.Map{"name": name})
	}
}
