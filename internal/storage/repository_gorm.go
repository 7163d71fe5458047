package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/keys"
)

type gormRepository struct {
	db *gorm.DB
	// configByKey maps keys.CreatureKey(name) -> config definition.
	configByKey map[string]game.Creature
}

// NewGormRepository returns a Repository backed by db. Creatures found in
// configRoster have their stats and moves taken from config.
func NewGormRepository(db *gorm.DB, configRoster []game.Creature) Repository {
	m := make(map[string]game.Creature, len(configRoster))
	for _, c := range configRoster {
		m[keys.CreatureKey(c.Name)] = c
	}
	return &gormRepository{db: db, configByKey: m}
}

func orderedMoves(db *gorm.DB) *gorm.DB { return db.Order("slot ASC") }

func (r *gormRepository) ListCreatures() ([]game.Creature, error) {
	var creatures []game.Creature
	if err := r.db.Preload("Moves", orderedMoves).Order("id ASC").Find(&creatures).Error; err != nil {
		return nil, err
	}
	for i := range creatures {
		r.applyConfig(&creatures[i])
	}
	return creatures, nil
}

func (r *gormRepository) GetCreatureByID(id uint) (*game.Creature, error) {
	var c game.Creature
	if err := r.db.Preload("Moves", orderedMoves).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatureNotFound
		}
		return nil, err
	}
	r.applyConfig(&c)
	return &c, nil
}

func (r *gormRepository) GetCreatureByName(name string) (*game.Creature, error) {
	key := keys.CreatureKey(name)
	if key == "" {
		return nil, ErrCreatureNotFound
	}
	var c game.Creature
	err := r.db.Preload("Moves", orderedMoves).Where(&game.Creature{Key: key}).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatureNotFound
		}
		return nil, err
	}
	r.applyConfig(&c)
	return &c, nil
}

// applyConfig overrides stored stats with the config definition when one
// exists (config is the source of truth).
func (r *gormRepository) applyConfig(c *game.Creature) {
	conf, ok := r.configByKey[keys.CreatureKey(c.Name)]
	if !ok {
		return
	}
	c.Type = conf.Type
	c.MaxHP = conf.MaxHP
	c.Speed = conf.Speed
	c.Sprites = conf.Sprites
	if len(conf.Moves) > 0 {
		moves := make([]game.Move, len(conf.Moves))
		for i, m := range conf.Moves {
			m.CreatureID = c.ID
			m.Slot = i
			moves[i] = m
		}
		c.Moves = moves
	}
}
