// Package dedupe names the singleflight keys used to deduplicate concurrent
// roster loads. Each cache owns its own group; only one repository read runs
// per key and group while other callers wait for its result.
package dedupe

// RosterKey is the key for a full roster load.
const RosterKey = "roster"

// CreatureKey is the key for a single creature lookup.
func CreatureKey(key string) string { return "creature:" + key }
