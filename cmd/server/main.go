package main

import (
	"fmt"
	"log/slog"

	"github.com/carteiralabs/carteira/infra"
	infrarepo "github.com/carteiralabs/carteira/infra/repository"
	infraledger "github.com/carteiralabs/carteira/infra/repository/ledger"
	infrauser "github.com/carteiralabs/carteira/infra/repository/user"
	"github.com/carteiralabs/carteira/pkg/config"
	authsvc "github.com/carteiralabs/carteira/pkg/service/auth"
	usersvc "github.com/carteiralabs/carteira/pkg/service/user"
	walletsvc "github.com/carteiralabs/carteira/pkg/service/wallet"
	"github.com/carteiralabs/carteira/webapi"
	"github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()

	cfg, err := config.Load(".env", logger)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&infrauser.User{}, &infraledger.Entry{}); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	uow := infrarepo.NewUoW(db, infrauser.New, infraledger.New)

	userSvc := usersvc.New(uow, logger)
	authSvc := authsvc.New(uow, cfg.Jwt, logger)
	walletSvc := walletsvc.New(uow, logger)

	app := webapi.NewApp(userSvc, authSvc, walletSvc, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}
