package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/constants"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/logging"
)

// dialectorFor picks the gorm dialect from the DSN: postgres:// and
// postgresql:// URLs go to Postgres, anything else is a SQLite path or URI.
func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// OpenAndMigrate opens the roster database, migrates the schema and seeds
// the configured roster when the creature table is empty.
func OpenAndMigrate(dsn string, rosterFromConfig []game.Creature) (*gorm.DB, error) {
	if err := ensureSQLiteDir(dsn); err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("open roster db: %w", err)
	}

	if err := db.AutoMigrate(&game.Creature{}, &game.Move{}); err != nil {
		return nil, fmt.Errorf("migrate roster db: %w", err)
	}
	if err := seedRoster(db, rosterFromConfig); err != nil {
		logging.Error("failed to seed roster", err, logging.Fields{constants.LogFieldCount: len(rosterFromConfig)})
		return nil, err
	}
	return db, nil
}

// ensureSQLiteDir creates the parent directory of a file-backed SQLite DSN.
func ensureSQLiteDir(dsn string) error {
	if strings.Contains(dsn, "://") || strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Stats always come from config (see gormRepository), so seeding only has
// to make sure every configured creature has a row.
func seedRoster(db *gorm.DB, rosterFromConfig []game.Creature) error {
	var count int64
	if err := db.Model(&game.Creature{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	creatures := make([]game.Creature, len(rosterFromConfig))
	for i, c := range rosterFromConfig {
		creatures[i] = c
		creatures[i].Moves = make([]game.Move, len(c.Moves))
		for j, m := range c.Moves {
			m.ID = 0
			m.Slot = j
			creatures[i].Moves[j] = m
		}
	}
	if len(creatures) == 0 {
		return nil
	}
	if err := db.Create(&creatures).Error; err != nil {
		return err
	}
	logging.Info("roster seeded", logging.Fields{constants.LogFieldCount: len(creatures)})
	return nil
}
