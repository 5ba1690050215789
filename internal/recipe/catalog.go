// Package recipe provides the in-memory recipe grimoire.
package recipe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/idgen"
	"github.com/hammamikhairi/alchemy/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeStore = (*Catalog)(nil)

// Catalog holds recipes in insertion order. Display order is insertion
// order. Safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	recipes []*domain.Recipe
	ids     *idgen.Generator
	rnd     domain.RandSource // must be safe for concurrent use
	log     *logger.Logger
}

// NewCatalog creates a catalog preloaded with the seed recipes.
func NewCatalog(ids *idgen.Generator, rnd domain.RandSource, log *logger.Logger) *Catalog {
	c := &Catalog{
		ids: ids,
		rnd: rnd,
		log: log,
	}
	c.seed()
	return c
}

// List returns copies of all recipes in display order.
func (c *Catalog) List(ctx context.Context) ([]*domain.Recipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.log.Debug("listing recipes, count=%d", len(c.recipes))

	out := make([]*domain.Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, r.Clone())
	}
	return out, nil
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.recipes)
}

// Get returns a recipe by ID.
func (c *Catalog) Get(ctx context.Context, id int64) (*domain.Recipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexLocked(id); i >= 0 {
		return c.recipes[i].Clone(), nil
	}
	c.log.Debug("recipe not found: %d", id)
	return nil, domain.ErrNotFound
}

// Add materialises a recipe from a randomly chosen template and appends it.
func (c *Catalog) Add(ctx context.Context) (*domain.Recipe, error) {
	tpl := templates[c.rnd.Intn(len(templates))]

	r := tpl.materialize(c.ids.Next())

	c.mu.Lock()
	c.recipes = append(c.recipes, r)
	n := len(c.recipes)
	c.mu.Unlock()

	c.log.Info("recipe added: %s (%s, id=%d, total=%d)", r.Name, r.Rarity, r.ID, n)
	return r.Clone(), nil
}

// Delete removes the recipe with the given ID and reports whether it was
// present. A missing ID is a silent no-op.
func (c *Catalog) Delete(ctx context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexLocked(id)
	if i < 0 {
		c.log.Debug("delete: recipe %d not in catalog, ignoring", id)
		return false, nil
	}
	name := c.recipes[i].Name
	c.recipes = append(c.recipes[:i], c.recipes[i+1:]...)
	c.log.Info("recipe deleted: %s (id=%d, total=%d)", name, id, len(c.recipes))
	return true, nil
}

// RarityPrefix turns a search query into a tier filter: "rarity:epic".
const RarityPrefix = "rarity:"

// Search returns recipes whose name, effect or ingredients contain the
// query, case-insensitively, in display order. A query of the form
// "rarity:<tier>" returns that tier instead; an unknown tier wraps
// domain.ErrInvalidRarity.
func (c *Catalog) Search(ctx context.Context, query string) ([]*domain.Recipe, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	c.log.Debug("searching recipes for: %s", q)

	keep := func(r *domain.Recipe) bool { return matches(r, q) }
	if name, ok := strings.CutPrefix(q, RarityPrefix); ok {
		tier, err := domain.ParseRarity(name)
		if err != nil {
			return nil, fmt.Errorf("searching recipes: %w", err)
		}
		keep = func(r *domain.Recipe) bool { return r.Rarity == tier }
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*domain.Recipe
	for _, r := range c.recipes {
		if keep(r) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

// RarityGroup is a run of recipes sharing a tier.
type RarityGroup struct {
	Rarity  domain.Rarity
	Recipes []*domain.Recipe
}

// Group buckets recipes by tier, highest tier first. Within a group the
// input order is preserved. Empty tiers are omitted.
func Group(recipes []*domain.Recipe) []RarityGroup {
	byTier := make(map[domain.Rarity][]*domain.Recipe)
	for _, r := range recipes {
		byTier[r.Rarity] = append(byTier[r.Rarity], r)
	}

	groups := make([]RarityGroup, 0, len(byTier))
	for tier, rs := range byTier {
		groups = append(groups, RarityGroup{Rarity: tier, Recipes: rs})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Rarity.Rank() > groups[j].Rarity.Rank()
	})
	return groups
}

func (c *Catalog) indexLocked(id int64) int {
	for i, r := range c.recipes {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func matches(r *domain.Recipe, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Effect), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), query) {
			return true
		}
	}
	return false
}
