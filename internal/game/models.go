package game

import (
	"time"

	"gorm.io/gorm"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/keys"
)

// Creature is a roster entry. Roster entries are static reference data: the
// engine copies them into a session and never mutates the copies.
type Creature struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name string `json:"name" gorm:"size:64"`
	// Key is the case-folded name used for lookups; see keys.CreatureKey.
	Key   string      `json:"-" yaml:"-" gorm:"size:64;uniqueIndex"`
	Type  ElementType `json:"type" gorm:"size:16"`
	MaxHP int         `json:"max_hp"`
	// Speed is carried for presentation layers; turn order does not use it.
	Speed int `json:"speed"`
	// Sprites are opaque asset handles (URLs or file names).
	Sprites Sprites `json:"sprites" gorm:"embedded;embeddedPrefix:sprite_"`
	Moves   []Move  `json:"moves" gorm:"foreignKey:CreatureID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName keeps the roster in `roster_creatures` instead of `creatures`.
func (Creature) TableName() string { return "roster_creatures" }

// BeforeSave keeps Key in sync with Name.
func (c *Creature) BeforeSave(tx *gorm.DB) error {
	c.Key = keys.CreatureKey(c.Name)
	return nil
}

type Sprites struct {
	Front string `json:"front" yaml:"front"`
	Back  string `json:"back" yaml:"back"`
}

// Move is one action of a creature's fixed move list. Slot preserves the
// configured order when the roster is loaded back from the database.
type Move struct {
	ID         uint        `json:"-" gorm:"primaryKey"`
	CreatureID uint        `json:"-" gorm:"index"`
	Slot       int         `json:"-"`
	Name       string      `json:"name" gorm:"size:64"`
	Type       ElementType `json:"type" gorm:"size:16"`
	Power      int         `json:"power"`
	Accuracy   int         `json:"accuracy"`
	// Effect is a cosmetic tag (only EffectAttackDown today); damage math
	// ignores it.
	Effect string `json:"effect,omitempty" gorm:"size:32"`
	Heal   bool   `json:"heal,omitempty"`
}

func (Move) TableName() string { return "roster_moves" }

// IsStatus reports whether the move is a non-damaging status move.
func (m Move) IsStatus() bool { return m.Type == TypeStatus }

// FindCreature returns the roster entry with the given ID.
func FindCreature(roster []Creature, id uint) (Creature, bool) {
	for _, c := range roster {
		if c.ID == id {
			return c, true
		}
	}
	return Creature{}, false
}
