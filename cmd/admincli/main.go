// Command admincli seeds or moderates administrator accounts from the
// terminal. Registration over HTTP only creates ordinary accounts, so the
// first admin has to come from here.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/carteiralabs/carteira/infra"
	infrarepo "github.com/carteiralabs/carteira/infra/repository"
	infraledger "github.com/carteiralabs/carteira/infra/repository/ledger"
	infrauser "github.com/carteiralabs/carteira/infra/repository/user"
	"github.com/carteiralabs/carteira/pkg/config"
	"github.com/carteiralabs/carteira/pkg/domain/user"
	"github.com/carteiralabs/carteira/pkg/dto"
	"github.com/carteiralabs/carteira/pkg/repository"
	usersvc "github.com/carteiralabs/carteira/pkg/service/user"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: admincli <command> [arguments]")
		fmt.Println("Commands:")
		fmt.Println("  create-admin <name> <document> <email>   create an administrator account")
		fmt.Println("  approve <email>                          approve a pending account")
		fmt.Println("  block <email>                            block an account")
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg, err := config.Load(".env", logger)
	if err != nil {
		log.Fatal("failed to load configuration", "err", err)
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		log.Fatal("failed to connect to database", "err", err)
	}
	uow := infrarepo.NewUoW(db, infrauser.New, infraledger.New)
	svc := usersvc.New(uow, logger)
	ctx := context.Background()

	switch os.Args[1] {
	case "create-admin":
		if len(os.Args) < 5 {
			log.Fatal("usage: admincli create-admin <name> <document> <email>")
		}
		createAdmin(ctx, uow, os.Args[2], os.Args[3], os.Args[4])
	case "approve":
		if len(os.Args) < 3 {
			log.Fatal("usage: admincli approve <email>")
		}
		if err := svc.Approve(ctx, os.Args[2]); err != nil {
			log.Fatal("approval failed", "err", err)
		}
		color.Green("account %s approved", os.Args[2])
	case "block":
		if len(os.Args) < 3 {
			log.Fatal("usage: admincli block <email>")
		}
		if err := svc.Block(ctx, os.Args[2]); err != nil {
			log.Fatal("block failed", "err", err)
		}
		color.Yellow("account %s blocked", os.Args[2])
	default:
		log.Fatal("unknown command", "command", os.Args[1])
	}
}

func createAdmin(ctx context.Context, uow repository.UnitOfWork, name, document, email string) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatal("failed to read password", "err", err)
	}

	admin, err := user.New(name, document, email, string(password))
	if err != nil {
		log.Fatal("invalid admin account", "err", err)
	}
	admin.Role = user.RoleAdmin
	admin.Status = user.StatusApproved

	err = uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, &dto.UserCreate{
			ID:       admin.ID,
			Name:     admin.Name,
			Document: admin.Document,
			Email:    admin.Email,
			Password: admin.Password,
			Role:     int(admin.Role),
			Status:   string(admin.Status),
			Balance:  admin.Balance,
		})
	})
	if err != nil {
		log.Fatal("failed to create admin", "err", err)
	}
	color.Green("admin %s (%s) created", admin.Name, admin.Email)
}
