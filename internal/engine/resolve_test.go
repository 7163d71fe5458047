package engine

import (
	"testing"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
)

// scriptedSource replays fixed draws and panics when it runs dry.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		panic("scripted int out of range")
	}
	return v
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

var (
	charmander = game.Creature{ID: 1, Name: "Charmander", Type: game.TypeFire, MaxHP: 120, Speed: 10}
	squirtle   = game.Creature{ID: 2, Name: "Squirtle", Type: game.TypeWater, MaxHP: 125, Speed: 9}
	ember      = game.Move{Name: "Ember", Type: game.TypeFire, Power: 25, Accuracy: 90}
)

func TestResolve_EmberAgainstWater(t *testing.T) {
	src := &scriptedSource{ints: []int{15}, floats: []float64{0.5}}
	out := Resolve(ember, charmander, squirtle, src)
	if out.Damage != 10 {
		t.Fatalf("expected 10 damage, got %d", out.Damage)
	}
	if out.Effectiveness != TagWeak || out.Critical {
		t.Fatalf("expected weak non-critical hit, got %+v", out)
	}
}

func TestResolve_CriticalSuperEffective(t *testing.T) {
	bulbasaur := game.Creature{Name: "Bulbasaur", Type: game.TypeGrass, MaxHP: 130}
	fang := game.Move{Name: "Fire Fang", Type: game.TypeFire, Power: 35, Accuracy: 85}
	// base 28, x2, x1.5, variance 0.85 -> floor(71.4)
	src := &scriptedSource{ints: []int{0}, floats: []float64{0.01}}
	out := Resolve(fang, charmander, bulbasaur, src)
	if out.Damage != 71 || !out.Critical || out.Effectiveness != TagSuper {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestResolve_DrawOrderVarianceThenCritical(t *testing.T) {
	src := &scriptedSource{ints: []int{3}, floats: []float64{0.99}}
	out := Resolve(ember, charmander, squirtle, src)
	if out.Variance != 88 {
		t.Fatalf("expected variance 88 from first int draw, got %d", out.Variance)
	}
	if len(src.ints) != 0 || len(src.floats) != 0 {
		t.Fatalf("expected exactly one int and one float draw")
	}
}

func TestResolve_ZeroPowerNeverDamages(t *testing.T) {
	growl := game.Move{Name: "Growl", Type: game.TypeStatus, Power: 0, Accuracy: 100, Effect: game.EffectAttackDown}
	leech := game.Move{Name: "Leech Seed", Type: game.TypeGrass, Power: 0, Accuracy: 90, Heal: true}
	src := NewSource(7)
	for i := 0; i < 2000; i++ {
		if d := Resolve(growl, charmander, squirtle, src).Damage; d != 0 {
			t.Fatalf("status move dealt %d damage", d)
		}
		if d := Resolve(leech, charmander, squirtle, src).Damage; d != 0 {
			t.Fatalf("zero power move dealt %d damage", d)
		}
	}
}

func TestResolve_StatusMoveHasNoEffectivenessTag(t *testing.T) {
	growl := game.Move{Name: "Growl", Type: game.TypeStatus, Accuracy: 100}
	out := Resolve(growl, charmander, squirtle, &scriptedSource{ints: []int{0}, floats: []float64{0.5}})
	if out.Effectiveness != TagNeutral {
		t.Fatalf("status move should not be looked up, got %q", out.Effectiveness)
	}
}

func TestResolve_CriticalRateConverges(t *testing.T) {
	src := NewSource(42)
	const n = 160000
	crits := 0
	for i := 0; i < n; i++ {
		if Resolve(ember, charmander, squirtle, src).Critical {
			crits++
		}
	}
	rate := float64(crits) / n
	if rate < 0.058 || rate > 0.067 {
		t.Fatalf("critical rate %.4f too far from 1/16", rate)
	}
}

func TestHits_AccuracyBounds(t *testing.T) {
	for _, roll := range []float64{0, 12.5, 50, 99.999} {
		if !Hits(100, roll) {
			t.Fatalf("accuracy 100 missed on roll %v", roll)
		}
		if Hits(0, roll) {
			t.Fatalf("accuracy 0 hit on roll %v", roll)
		}
	}
	if !Hits(90, 90) {
		t.Fatalf("roll equal to accuracy must hit")
	}
	if Hits(90, 90.01) {
		t.Fatalf("roll above accuracy must miss")
	}
}
