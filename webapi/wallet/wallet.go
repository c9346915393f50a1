// Package wallet exposes the deposit/transfer, statement and reversal routes.
package wallet

import (
	"github.com/carteiralabs/carteira/pkg/config"
	"github.com/carteiralabs/carteira/pkg/domain/ledger"
	"github.com/carteiralabs/carteira/pkg/middleware"
	usersvc "github.com/carteiralabs/carteira/pkg/service/user"
	walletsvc "github.com/carteiralabs/carteira/pkg/service/wallet"
	"github.com/carteiralabs/carteira/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Routes registers the wallet routes. All of them require an ordinary-user
// session.
//
//   - GET  /wallet/:type           : movement form data (type ∈ Deposit, Transfer).
//   - POST /wallet/:type           : execute a deposit or transfer.
//   - GET  /wallet/extract/complet : account statement, newest first.
//   - POST /wallet/revert/:id      : reverse a ledger entry.
func Routes(
	app *fiber.App,
	walletSvc *walletsvc.Service,
	userSvc *usersvc.Service,
	cfg *config.AppConfig,
) {
	protected := []fiber.Handler{middleware.JwtProtected(cfg.Jwt), middleware.OrdinaryOnly()}

	// The static segment must be registered before the :type wildcard.
	app.Get("/wallet/extract/complet", protected[0], protected[1], Extract(walletSvc, userSvc))
	app.Post("/wallet/revert/:id", protected[0], protected[1], Revert(walletSvc, userSvc))
	app.Get("/wallet/:type", protected[0], protected[1], MovementForm(userSvc))
	app.Post("/wallet/:type", protected[0], protected[1], Movement(walletSvc, userSvc))
}

// MovementForm returns the data backing the deposit/transfer form: the
// movement type and the current user snapshot.
func MovementForm(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, ok := movementKind(c.Params("type"))
		if !ok {
			return common.ProblemDetailsJSON(c, "Unknown movement type", nil, "Type must be Deposit or Transfer", fiber.StatusNotFound)
		}
		claims := middleware.Claims(c)
		u, err := userSvc.GetByEmail(c.Context(), claims.Email)
		if err != nil || u == nil {
			return c.Redirect("/exit", fiber.StatusSeeOther)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Movement form", fiber.Map{
			"type": kind,
			"user": u,
		})
	}
}

// Movement executes a deposit or transfer for the authenticated user.
func Movement(walletSvc *walletsvc.Service, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, ok := movementKind(c.Params("type"))
		if !ok {
			return common.ProblemDetailsJSON(c, "Unknown movement type", nil, "Type must be Deposit or Transfer", fiber.StatusNotFound)
		}
		input, err := common.BindAndValidate[MovementInput](c)
		if input == nil {
			return err
		}
		amount, err := decimal.NewFromString(input.Value)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, "Value must be a number", fiber.StatusBadRequest)
		}
		claims := middleware.Claims(c)

		var entry *ledger.Entry
		switch kind {
		case ledger.KindDeposit:
			entry, err = walletSvc.Deposit(c.Context(), claims, amount)
		case ledger.KindTransfer:
			if input.To == "" {
				return common.ProblemDetailsJSON(c, "Invalid transfer", nil, "Recipient is required", fiber.StatusBadRequest)
			}
			entry, err = walletSvc.Transfer(c.Context(), claims, input.To, amount)
		}
		if err != nil {
			log.Warnf("%s failed for %s: %v", kind, claims.Document, err)
			return common.ProblemDetailsJSON(c, "Movement failed", err)
		}

		u, err := userSvc.GetByEmail(c.Context(), claims.Email)
		if err != nil {
			return c.Redirect("/exit", fiber.StatusSeeOther)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, string(kind)+" successful", fiber.Map{
			"entry": entry,
			"user":  u,
		})
	}
}

// Extract returns the statement: every entry where the user is sender or
// receiver, most recent first.
func Extract(walletSvc *walletsvc.Service, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.Claims(c)
		entries, err := walletSvc.Extract(c.Context(), claims.Document)
		if err != nil {
			log.Errorf("extract failed for %s: %v", claims.Document, err)
			return common.ProblemDetailsJSON(c, "Couldn't load statement", err)
		}
		u, err := userSvc.GetByEmail(c.Context(), claims.Email)
		if err != nil {
			return c.Redirect("/exit", fiber.StatusSeeOther)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Statement", fiber.Map{
			"extract": entries,
			"user":    u,
		})
	}
}

// Revert reverses a ledger entry once and undoes its balance effects.
func Revert(walletSvc *walletsvc.Service, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid entry ID", err, "Entry ID must be a valid UUID", fiber.StatusBadRequest)
		}
		claims := middleware.Claims(c)
		if err := walletSvc.Reverse(c.Context(), id); err != nil {
			log.Warnf("reversal of %s failed: %v", id, err)
			return common.ProblemDetailsJSON(c, "Couldn't reverse entry", err)
		}
		u, err := userSvc.GetByEmail(c.Context(), claims.Email)
		if err != nil {
			return c.Redirect("/exit", fiber.StatusSeeOther)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Entry reversed", fiber.Map{
			"user": u,
		})
	}
}

func movementKind(param string) (ledger.Kind, bool) {
	switch ledger.Kind(param) {
	case ledger.KindDeposit:
		return ledger.KindDeposit, true
	case ledger.KindTransfer:
		return ledger.KindTransfer, true
	}
	return "", false
}
