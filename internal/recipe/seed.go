package recipe

import "github.com/hammamikhairi/alchemy/internal/domain"

// Filler text shared by every templated recipe.
var (
	templateIngredients = []string{"Mystical Element", "Ethereal Essence", "Arcane Crystal"}
	templateDifficulty  = "Unknown"
	templateEffect      = "Channels powerful magical energies"
)

// template is the random part of a newly brewed recipe.
type template struct {
	name   string
	icon   string
	color  string
	rarity domain.Rarity
}

// templates is what Add draws from. Order matters for tests that inject a
// deterministic RandSource.
var templates = []template{
	{name: "Mystic Fire Brew", icon: "🔥", color: "#ff4757", rarity: domain.RarityRare},
	{name: "Frost Shield Elixir", icon: "❄️", color: "#3742fa", rarity: domain.RarityEpic},
	{name: "Wind Walker Potion", icon: "🌪️", color: "#2ed573", rarity: domain.RarityCommon},
	{name: "Dragon Breath Draught", icon: "🐉", color: "#ff6b35", rarity: domain.RarityLegendary},
}

// TemplateNames lists the names Add can produce.
func TemplateNames() []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = t.name
	}
	return out
}

func (t template) materialize(id int64) *domain.Recipe {
	return &domain.Recipe{
		ID:          id,
		Name:        t.name,
		Ingredients: append([]string(nil), templateIngredients...),
		Difficulty:  templateDifficulty,
		Effect:      templateEffect,
		Rarity:      t.rarity,
		Color:       t.color,
		Icon:        t.icon,
	}
}

// seed populates the catalog with the built-in recipes.
func (c *Catalog) seed() {
	c.recipes = []*domain.Recipe{
		{
			ID:          1,
			Name:        "Crimson Healing Draught",
			Ingredients: []string{"Moonbell Petals", "Crystal Dewdrops", "Phoenix Ember"},
			Difficulty:  "Intermediate",
			Effect:      "Restores 75 Health over 10 seconds",
			Rarity:      domain.RarityRare,
			Color:       "#e74c3c",
			Icon:        "🔴",
		},
		{
			ID:          2,
			Name:        "Ethereal Veil Elixir",
			Ingredients: []string{"Shadow Moss", "Spirit Essence", "Starlight Powder"},
			Difficulty:  "Master",
			Effect:      "Grants invisibility for 30 seconds",
			Rarity:      domain.RarityEpic,
			Color:       "#9b59b6",
			Icon:        "👻",
		},
		{
			ID:          3,
			Name:        "Lightning Strike Potion",
			Ingredients: []string{"Storm Essence", "Thunder Crystal", "Sky Root"},
			Difficulty:  "Expert",
			Effect:      "Channels lightning through your spells",
			Rarity:      domain.RarityLegendary,
			Color:       "#f1c40f",
			Icon:        "⚡",
		},
	}
	c.log.Debug("seeded %d recipes", len(c.recipes))
}
