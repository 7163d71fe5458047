package storage

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/dedupe"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/keys"
)

// CachedRoster keeps an in-memory copy of the roster. Concurrent misses
// share one repository read through the cache's singleflight group.
type CachedRoster struct {
	repo  Repository
	group singleflight.Group

	mu     sync.RWMutex
	cached []game.Creature
}

func NewCachedRoster(repo Repository) *CachedRoster {
	return &CachedRoster{repo: repo}
}

// ListCreatures returns a copy of the cached roster, loading it on first use.
func (c *CachedRoster) ListCreatures() ([]game.Creature, error) {
	c.mu.RLock()
	cached := c.cached
	c.mu.RUnlock()
	if cached != nil {
		return cloneRoster(cached), nil
	}

	v, err, _ := c.group.Do(dedupe.RosterKey, func() (interface{}, error) {
		list, err := c.repo.ListCreatures()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cached = list
		c.mu.Unlock()
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneRoster(v.([]game.Creature)), nil
}

// GetCreatureByName looks the creature up in the cached roster. A miss
// falls through to the repository, and a hit there drops the stale cache.
func (c *CachedRoster) GetCreatureByName(name string) (*game.Creature, error) {
	list, err := c.ListCreatures()
	if err != nil {
		return nil, err
	}
	key := keys.CreatureKey(name)
	if key == "" {
		return nil, ErrCreatureNotFound
	}
	for i := range list {
		if keys.CreatureKey(list[i].Name) == key {
			return &list[i], nil
		}
	}

	v, err, _ := c.group.Do(dedupe.CreatureKey(key), func() (interface{}, error) {
		return c.repo.GetCreatureByName(name)
	})
	if err != nil {
		return nil, err
	}
	c.Invalidate()
	found := *v.(*game.Creature)
	found.Moves = append([]game.Move(nil), found.Moves...)
	return &found, nil
}

// Invalidate drops the cached copy so the next call reloads it.
func (c *CachedRoster) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

func cloneRoster(in []game.Creature) []game.Creature {
	out := make([]game.Creature, len(in))
	for i, cr := range in {
		out[i] = cr
		out[i].Moves = append([]game.Move(nil), cr.Moves...)
	}
	return out
}
