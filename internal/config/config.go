package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/constants"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/keys"
)

//go:embed default_config.json
var defaultConfig []byte

type moveEntry struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Power    int    `json:"power" yaml:"power"`
	Accuracy int    `json:"accuracy" yaml:"accuracy"`
	Effect   string `json:"effect" yaml:"effect"`
	Heal     bool   `json:"heal" yaml:"heal"`
}

type creatureEntry struct {
	ID      uint         `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Type    string       `json:"type" yaml:"type"`
	MaxHP   int          `json:"max_hp" yaml:"max_hp"`
	Speed   int          `json:"speed" yaml:"speed"`
	Sprites game.Sprites `json:"sprites" yaml:"sprites"`
	Moves   []moveEntry  `json:"moves" yaml:"moves"`
}

type rawConfig struct {
	CreatureList []creatureEntry `json:"creature_list" yaml:"creature_list"`
	Server       *struct {
		Address string `json:"address" yaml:"address"`
	} `json:"server" yaml:"server"`
	Database *struct {
		DSN string `json:"dsn" yaml:"dsn"`
	} `json:"database" yaml:"database"`
	// Optional pauses of a turn, in milliseconds. Missing keys keep the
	// defaults; 0 is allowed and makes the step immediate.
	Timings *struct {
		PreResolveMS   *int `json:"pre_resolve_ms" yaml:"pre_resolve_ms"`
		HitMS          *int `json:"hit_ms" yaml:"hit_ms"`
		PostResolveMS  *int `json:"post_resolve_ms" yaml:"post_resolve_ms"`
		OpponentTurnMS *int `json:"opponent_turn_ms" yaml:"opponent_turn_ms"`
	} `json:"timings" yaml:"timings"`
	HealAmount *int `json:"heal_amount" yaml:"heal_amount"`
}

// LoadedConfig contains the roster to seed, the battle rules, the server
// address to bind to and the roster database DSN.
type LoadedConfig struct {
	Roster        []game.Creature
	Rules         game.Rules
	ServerAddress string
	DatabaseDSN   string
}

// LoadConfig reads the configuration file at path. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON. It requires the key
// `creature_list` (snake_case).
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(b, formatOf(path), path)
}

// Default returns the embedded configuration with the stock roster.
func Default() (*LoadedConfig, error) {
	return Parse(defaultConfig, "json", "default_config.json")
}

// Load resolves the configuration from the environment: DUEL_CONFIG names
// a file (the embedded default is used otherwise), DUEL_DB and DUEL_ADDR
// override the database DSN and listen address.
func Load() (*LoadedConfig, error) {
	var (
		cfg *LoadedConfig
		err error
	)
	if path := strings.TrimSpace(os.Getenv(constants.EnvConfigPath)); path != "" {
		cfg, err = LoadConfig(path)
	} else {
		cfg, err = Default()
	}
	if err != nil {
		return nil, err
	}
	if dsn := strings.TrimSpace(os.Getenv(constants.EnvDatabase)); dsn != "" {
		cfg.DatabaseDSN = dsn
	}
	if addr := strings.TrimSpace(os.Getenv(constants.EnvAddress)); addr != "" {
		cfg.ServerAddress = addr
	}
	return cfg, nil
}

// Seed returns the fixed RNG seed from DUEL_SEED, if set.
func Seed() (int64, bool, error) {
	v := strings.TrimSpace(os.Getenv(constants.EnvSeed))
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s %q: %w", constants.EnvSeed, v, err)
	}
	return n, true, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

// Parse decodes and validates a configuration document. source names the
// document in error messages.
func Parse(b []byte, format, source string) (*LoadedConfig, error) {
	var rc rawConfig
	var err error
	if format == "yaml" {
		err = yaml.Unmarshal(b, &rc)
	} else {
		err = json.Unmarshal(b, &rc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", source, err)
	}

	roster, err := buildRoster(rc.CreatureList, source)
	if err != nil {
		return nil, err
	}
	rules, err := buildRules(rc, source)
	if err != nil {
		return nil, err
	}

	addr := constants.DefaultAddress
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	dsn := constants.DefaultDatabaseDSN
	if rc.Database != nil && rc.Database.DSN != "" {
		dsn = rc.Database.DSN
	}

	return &LoadedConfig{
		Roster:        roster,
		Rules:         rules,
		ServerAddress: addr,
		DatabaseDSN:   dsn,
	}, nil
}

func buildRoster(entries []creatureEntry, source string) ([]game.Creature, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: creature_list is empty (provide 'creature_list' array)", source)
	}

	out := make([]game.Creature, 0, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("config file %s: creature entry %d missing 'name'", source, i)
		}
		ctype := game.ElementType(strings.ToLower(strings.TrimSpace(e.Type)))
		if !game.IsCombatType(ctype) {
			return nil, fmt.Errorf("config file %s: creature '%s' has unknown type '%s'", source, name, e.Type)
		}
		if e.MaxHP <= 0 {
			return nil, fmt.Errorf("config file %s: creature '%s' needs a positive max_hp", source, name)
		}
		if len(e.Moves) == 0 {
			return nil, fmt.Errorf("config file %s: creature '%s' has no moves", source, name)
		}
		id := e.ID
		if id == 0 {
			id = uint(i + 1)
		}
		moves := make([]game.Move, 0, len(e.Moves))
		for j, m := range e.Moves {
			mv, err := buildMove(m, source, name)
			if err != nil {
				return nil, err
			}
			mv.Slot = j
			moves = append(moves, mv)
		}
		out = append(out, game.Creature{
			ID:      id,
			Name:    name,
			Key:     keys.CreatureKey(name),
			Type:    ctype,
			MaxHP:   e.MaxHP,
			Speed:   e.Speed,
			Sprites: e.Sprites,
			Moves:   moves,
		})
	}

	// Cross-entry validation: ensure unique creature names (case-insensitive)
	// and unique IDs.
	nameSet := make(map[string]struct{}, len(out))
	idSet := make(map[uint]struct{}, len(out))
	for _, c := range out {
		if _, exists := nameSet[c.Key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate creature name '%s'", source, c.Name)
		}
		nameSet[c.Key] = struct{}{}
		if _, exists := idSet[c.ID]; exists {
			return nil, fmt.Errorf("config file %s: duplicate creature id %d", source, c.ID)
		}
		idSet[c.ID] = struct{}{}
	}
	return out, nil
}

func buildMove(m moveEntry, source, creature string) (game.Move, error) {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return game.Move{}, fmt.Errorf("config file %s: creature '%s' has a move without 'name'", source, creature)
	}
	mtype := game.ElementType(strings.ToLower(strings.TrimSpace(m.Type)))
	if !game.IsMoveType(mtype) {
		return game.Move{}, fmt.Errorf("config file %s: move '%s' of '%s' has unknown type '%s'", source, name, creature, m.Type)
	}
	if m.Accuracy < 0 || m.Accuracy > 100 {
		return game.Move{}, fmt.Errorf("config file %s: move '%s' of '%s' has accuracy %d outside 0..100", source, name, creature, m.Accuracy)
	}
	if m.Power < 0 {
		return game.Move{}, fmt.Errorf("config file %s: move '%s' of '%s' has negative power", source, name, creature)
	}
	if mtype == game.TypeStatus && m.Power != 0 {
		return game.Move{}, fmt.Errorf("config file %s: status move '%s' of '%s' must have power 0", source, name, creature)
	}
	effect := strings.TrimSpace(m.Effect)
	if effect != "" && effect != game.EffectAttackDown {
		return game.Move{}, fmt.Errorf("config file %s: move '%s' of '%s' has unknown effect '%s'", source, name, creature, m.Effect)
	}
	return game.Move{
		Name:     name,
		Type:     mtype,
		Power:    m.Power,
		Accuracy: m.Accuracy,
		Effect:   effect,
		Heal:     m.Heal,
	}, nil
}

func buildRules(rc rawConfig, source string) (game.Rules, error) {
	rules := game.DefaultRules()
	if rc.Timings != nil {
		set := func(dst *time.Duration, v *int, key string) error {
			if v == nil {
				return nil
			}
			if *v < 0 {
				return fmt.Errorf("config file %s: timings.%s must not be negative", source, key)
			}
			*dst = time.Duration(*v) * time.Millisecond
			return nil
		}
		if err := set(&rules.PreResolveDelay, rc.Timings.PreResolveMS, "pre_resolve_ms"); err != nil {
			return rules, err
		}
		if err := set(&rules.HitDelay, rc.Timings.HitMS, "hit_ms"); err != nil {
			return rules, err
		}
		if err := set(&rules.PostResolveDelay, rc.Timings.PostResolveMS, "post_resolve_ms"); err != nil {
			return rules, err
		}
		if err := set(&rules.OpponentTurnDelay, rc.Timings.OpponentTurnMS, "opponent_turn_ms"); err != nil {
			return rules, err
		}
	}
	if rc.HealAmount != nil {
		if *rc.HealAmount < 0 {
			return rules, fmt.Errorf("config file %s: heal_amount must not be negative", source)
		}
		rules.HealAmount = *rc.HealAmount
	}
	return rules, nil
}
