// Package webapi assembles the fiber application: global middleware, landing
// pages and the per-area route groups.
package webapi

import (
	"time"

	"github.com/carteiralabs/carteira/pkg/config"
	"github.com/carteiralabs/carteira/pkg/middleware"
	authsvc "github.com/carteiralabs/carteira/pkg/service/auth"
	usersvc "github.com/carteiralabs/carteira/pkg/service/user"
	walletsvc "github.com/carteiralabs/carteira/pkg/service/wallet"
	authapi "github.com/carteiralabs/carteira/webapi/auth"
	"github.com/carteiralabs/carteira/webapi/common"
	userapi "github.com/carteiralabs/carteira/webapi/user"
	walletapi "github.com/carteiralabs/carteira/webapi/wallet"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp builds the fiber application with all routes and middleware.
func NewApp(
	userSvc *usersvc.Service,
	authSvc *authsvc.Service,
	walletSvc *walletsvc.Service,
	cfg *config.AppConfig,
) *fiber.App {
	app := fiber.New(fiber.Config{
		UnescapePath: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))

	// Public form pages. Rendering is handled by the frontend; these endpoints
	// only confirm the route surface.
	app.Get("/login", func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Login page", nil)
	})
	app.Get("/register", func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Registration page", nil)
	})

	// Authenticated landing pages.
	app.Get("/",
		middleware.JwtProtected(cfg.Jwt), middleware.OrdinaryOnly(), Home(userSvc))
	app.Get("/adm",
		middleware.JwtProtected(cfg.Jwt), middleware.AdminOnly(), AdminHome(userSvc))

	authapi.Routes(app, authSvc, userSvc, cfg)
	userapi.Routes(app, userSvc, cfg)
	walletapi.Routes(app, walletSvc, userSvc, cfg)

	return app
}

// Home returns the ordinary-user landing data: the current user snapshot.
func Home(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.Claims(c)
		u, err := userSvc.GetByEmail(c.Context(), claims.Email)
		if err != nil || u == nil {
			// A stale session is cleared by forcing a new login.
			return c.Redirect("/exit", fiber.StatusSeeOther)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Home", fiber.Map{"user": u})
	}
}

// AdminHome returns the admin landing data: the current user snapshot plus
// every account waiting for approval.
func AdminHome(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.Claims(c)
		u, err := userSvc.GetByEmail(c.Context(), claims.Email)
		if err != nil || u == nil {
			return c.Redirect("/exit", fiber.StatusSeeOther)
		}
		pending, err := userSvc.ListPending(c.Context())
		if err != nil {
			return c.Redirect("/exit", fiber.StatusSeeOther)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Admin home", fiber.Map{
			"user":     u,
			"allUsers": pending,
		})
	}
}
