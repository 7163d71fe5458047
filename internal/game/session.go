package game

import "time"

// Rules holds the timing and healing constants of a match.
type Rules struct {
	PreResolveDelay   time.Duration
	HitDelay          time.Duration
	PostResolveDelay  time.Duration
	OpponentTurnDelay time.Duration
	HealAmount        int
}

// DefaultRules returns the stock wind-up, hit-animation, settle and
// opponent-think delays plus the fixed heal amount.
func DefaultRules() Rules {
	return Rules{
		PreResolveDelay:   500 * time.Millisecond,
		HitDelay:          600 * time.Millisecond,
		PostResolveDelay:  1000 * time.Millisecond,
		OpponentTurnDelay: 1000 * time.Millisecond,
		HealAmount:        20,
	}
}

// AttackAnimation describes the hit animation currently playing.
type AttackAnimation struct {
	Type   ElementType `json:"type"`
	Target Side        `json:"target"`
}

// Session is the mutable state of one match. It is owned by the battle
// service; everything outside it sees Snapshots only.
type Session struct {
	ID         string
	Player     Creature
	Opponent   Creature
	PlayerHP   int
	OpponentHP int
	Turn       Side
	Log        []string
	Busy       bool
	Animation  *AttackAnimation
	Winner     Side
}

// NewSession creates a session with both sides at full health and the
// player holding the turn.
func NewSession(id string, player, opponent Creature) *Session {
	return &Session{
		ID:         id,
		Player:     player,
		Opponent:   opponent,
		PlayerHP:   player.MaxHP,
		OpponentHP: opponent.MaxHP,
		Turn:       SidePlayer,
		Log:        make([]string, 0, 32),
	}
}

// Creature returns the creature fighting for side.
func (s *Session) Creature(side Side) Creature {
	if side == SideOpponent {
		return s.Opponent
	}
	return s.Player
}

// HP returns the current health of side.
func (s *Session) HP(side Side) int {
	if side == SideOpponent {
		return s.OpponentHP
	}
	return s.PlayerHP
}

// SetHP stores hp for side, clamped to [0, MaxHP].
func (s *Session) SetHP(side Side, hp int) {
	max := s.Creature(side).MaxHP
	if hp < 0 {
		hp = 0
	}
	if hp > max {
		hp = max
	}
	if side == SideOpponent {
		s.OpponentHP = hp
	} else {
		s.PlayerHP = hp
	}
}

func (s *Session) AddLog(line string) { s.Log = append(s.Log, line) }

// Snapshot is the immutable, render-ready view of the battle state.
type Snapshot struct {
	SessionID              string           `json:"session_id,omitempty"`
	Phase                  Phase            `json:"phase"`
	Turn                   Side             `json:"turn,omitempty"`
	PlayerHP               int              `json:"player_hp"`
	OpponentHP             int              `json:"opponent_hp"`
	PlayerBand             HealthBand       `json:"player_band,omitempty"`
	OpponentBand           HealthBand       `json:"opponent_band,omitempty"`
	Log                    []string         `json:"log"`
	Busy                   bool             `json:"busy"`
	PendingAttackAnimation *AttackAnimation `json:"pending_attack_animation,omitempty"`
	Player                 *Creature        `json:"player,omitempty"`
	Opponent               *Creature        `json:"opponent,omitempty"`
	Winner                 Side             `json:"winner,omitempty"`
}

// SelectingSnapshot is the snapshot published while no session exists.
func SelectingSnapshot() Snapshot {
	return Snapshot{Phase: PhaseSelecting, Log: []string{}}
}

// Snapshot copies the session into a Snapshot for the given phase.
func (s *Session) Snapshot(phase Phase) Snapshot {
	log := make([]string, len(s.Log))
	copy(log, s.Log)
	player, opponent := s.Player, s.Opponent
	snap := Snapshot{
		SessionID:    s.ID,
		Phase:        phase,
		Turn:         s.Turn,
		PlayerHP:     s.PlayerHP,
		OpponentHP:   s.OpponentHP,
		PlayerBand:   Band(s.PlayerHP, player.MaxHP),
		OpponentBand: Band(s.OpponentHP, opponent.MaxHP),
		Log:          log,
		Busy:         s.Busy,
		Player:       &player,
		Opponent:     &opponent,
		Winner:       s.Winner,
	}
	if s.Animation != nil {
		a := *s.Animation
		snap.PendingAttackAnimation = &a
	}
	return snap
}

// HealthBand is the colour band of a health bar.
type HealthBand string

const (
	BandHigh HealthBand = "high"
	BandMid  HealthBand = "mid"
	BandLow  HealthBand = "low"
)

// Band classifies hp/max: at least 50% is high, at least 20% mid, else low.
func Band(hp, max int) HealthBand {
	if max <= 0 {
		return BandLow
	}
	percent := hp * 100 / max
	switch {
	case percent >= 50:
		return BandHigh
	case percent >= 20:
		return BandMid
	}
	return BandLow
}
