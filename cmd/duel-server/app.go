package main

import (
	"time"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/config"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/constants"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/engine"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/logging"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/storage"
)

func loadConfigOrExit() *config.LoadedConfig {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Missing or invalid duel configuration", err, logging.Fields{
			"hint": "set " + constants.EnvConfigPath + " to a JSON or YAML file with a 'creature_list' array (id,name,type,max_hp,speed,moves[{name,type,power,accuracy}])",
		})
	}
	return cfg
}

func createRosterOrExit(dsn string, roster []game.Creature) *storage.CachedRoster {
	db, err := storage.OpenAndMigrate(dsn, roster)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldPath: dsn})
	}
	return storage.NewCachedRoster(storage.NewGormRepository(db, roster))
}

// sourceOrExit seeds the battle RNG from DUEL_SEED when set, from the clock
// otherwise.
func sourceOrExit() engine.Source {
	seed, ok, err := config.Seed()
	if err != nil {
		logging.Fatal("Invalid seed", err, nil)
	}
	if !ok {
		seed = time.Now().UnixNano()
	}
	logging.Info("Battle RNG seeded", logging.Fields{"seed": seed, "fixed": ok})
	return engine.NewSource(seed)
}
