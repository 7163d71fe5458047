package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/api"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/constants"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/logging"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/service"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/version"
)

func main() {
	cfg := loadConfigOrExit()
	roster := createRosterOrExit(cfg.DatabaseDSN, cfg.Roster)

	rules := cfg.Rules
	battle := service.NewBattle(roster, service.Settings{
		Source: sourceOrExit(),
		Rules:  &rules,
	})
	defer battle.Close()

	handler := api.NewBattleHandler(battle, roster)

	router := gin.Default()
	api.RegisterRoutes(router, handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("Server started", logging.Fields{
		constants.LogFieldAddr:  cfg.ServerAddress,
		"version":               version.Version,
		constants.LogFieldCount: len(cfg.Roster),
	})
	if err := serve(ctx, cfg.ServerAddress, router); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
	logging.Info("Server stopped", nil)
}
