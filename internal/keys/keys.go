package keys

import (
	"strings"

	"golang.org/x/text/cases"
)

// CreatureKey produces a canonical lookup key for a creature name.
// Behavior: trims, case-folds and replaces inner spaces with underscores,
// so "Fire Fang", " fire fang " and "FIRE FANG" share one key.
func CreatureKey(name string) string {
	s := strings.TrimSpace(name)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), "_")
}
