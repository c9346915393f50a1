// Package auth exposes the login, registration and logout routes.
package auth

import (
	"errors"
	"time"

	"github.com/carteiralabs/carteira/pkg/config"
	"github.com/carteiralabs/carteira/pkg/domain/user"
	authsvc "github.com/carteiralabs/carteira/pkg/service/auth"
	usersvc "github.com/carteiralabs/carteira/pkg/service/user"
	"github.com/carteiralabs/carteira/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the authentication routes.
//
//   - POST /auth/login    : credential check, issues the jwt session cookie.
//   - POST /auth/register : create a pending account.
//   - GET  /exit          : clears the session cookie.
func Routes(app *fiber.App, authSvc *authsvc.Service, userSvc *usersvc.Service, cfg *config.AppConfig) {
	app.Post("/auth/login", Login(authSvc, cfg))
	app.Post("/auth/register", Register(userSvc))
	app.Get("/exit", Exit(cfg))
}

// Login authenticates by document and password and sets the session cookie.
// Pending and blocked accounts are told their status and get no cookie.
func Login(authSvc *authsvc.Service, cfg *config.AppConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.Context(), input.Document, input.Password)
		if err != nil {
			if errors.Is(err, authsvc.ErrDocumentNotRegistered) {
				return common.ProblemDetailsJSON(c, "Login failed", err, "The document is not registered")
			}
			if errors.Is(err, authsvc.ErrWrongPassword) {
				return common.ProblemDetailsJSON(c, "Login failed", err, "Incorrect password, check your credentials and try again")
			}
			log.Errorf("login failed: %v", err)
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, fiber.StatusInternalServerError)
		}

		// Drop any previous session before deciding whether a new one starts.
		clearSessionCookie(c, cfg)

		switch user.Status(u.Status) {
		case user.StatusWaitingForApproval:
			return common.SuccessResponseJSON(c, fiber.StatusOK, "Account waiting for approval", fiber.Map{"status": u.Status})
		case user.StatusBlocked:
			return common.SuccessResponseJSON(c, fiber.StatusOK, "Account blocked", fiber.Map{"status": u.Status})
		}

		token, err := authSvc.GenerateToken(u)
		if err != nil {
			log.Errorf("token generation failed: %v", err)
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, fiber.StatusInternalServerError)
		}
		c.Cookie(&fiber.Cookie{
			Name:     "jwt",
			Value:    token,
			HTTPOnly: true,
			Secure:   cfg.Jwt.CookieSecure,
			Expires:  time.Now().Add(cfg.Jwt.Expiry),
		})
		return c.Redirect("/", fiber.StatusSeeOther)
	}
}

// Register creates a pending ordinary account.
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		created, err := userSvc.Register(c.Context(), usersvc.RegisterInput{
			Name:            input.Name,
			Document:        input.Document,
			Email:           input.Email,
			Password:        input.Password,
			ConfirmPassword: input.ConfirmPassword,
		})
		if err != nil {
			switch {
			case errors.Is(err, user.ErrPasswordMismatch):
				return common.ProblemDetailsJSON(c, "Registration failed", err, "Passwords do not match, try again")
			case errors.Is(err, user.ErrDocumentTaken):
				return common.ProblemDetailsJSON(c, "Registration failed", err, "The document is already registered")
			case errors.Is(err, user.ErrEmailTaken):
				return common.ProblemDetailsJSON(c, "Registration failed", err, "The email is already registered")
			}
			log.Errorf("registration failed: %v", err)
			return common.ProblemDetailsJSON(c, "Couldn't create account", err, fiber.StatusInternalServerError)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created, waiting for approval", fiber.Map{
			"id":     created.ID,
			"status": created.Status,
		})
	}
}

// Exit clears the session cookie and sends the user back to the login page.
func Exit(cfg *config.AppConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clearSessionCookie(c, cfg)
		return c.Redirect("/", fiber.StatusSeeOther)
	}
}

func clearSessionCookie(c *fiber.Ctx, cfg *config.AppConfig) {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		HTTPOnly: true,
		Secure:   cfg.Jwt.CookieSecure,
		Expires:  time.Now().Add(-time.Hour),
	})
}
