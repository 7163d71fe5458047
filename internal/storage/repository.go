package storage

import (
	"errors"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
)

var ErrCreatureNotFound = errors.New("creature not found")

type Repository interface {
	// ListCreatures returns the roster ordered by ID with moves in slot order.
	ListCreatures() ([]game.Creature, error)
	GetCreatureByID(id uint) (*game.Creature, error)
	// GetCreatureByName returns a creature by its name (case-insensitive).
	GetCreatureByName(name string) (*game.Creature, error)
}
