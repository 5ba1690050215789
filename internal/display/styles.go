package display

import (
	"strings"

	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/alchemy/internal/domain"
)

// ── Skins ────────────────────────────────────────────────────────

// Skin is one presentation of the workshop. Skins share the model and
// differ only in colors and glyphs.
type Skin struct {
	Name    string
	Glamour string // glamour standard style for the team bios

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Banner   lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	Speaker   lipgloss.Style
	Timestamp lipgloss.Style
	AIBubble  lipgloss.Style
	UserText  lipgloss.Style
	Typing    lipgloss.Style
	Prompt    lipgloss.Style

	Card     lipgloss.Style
	Label    lipgloss.Style
	Effect   lipgloss.Style
	Muted    lipgloss.Style
	Position lipgloss.Style

	Controls lipgloss.Style
	VolFill  lipgloss.Style
	VolEmpty lipgloss.Style
	Playing  lipgloss.Style
	Paused   lipgloss.Style
	Silenced lipgloss.Style

	Modal  lipgloss.Style
	Status lipgloss.Style

	// Glyphs.
	PlayGlyph  string
	PauseGlyph string
	SoundGlyph string
	MuteGlyph  string
	FillRune   string
	EmptyRune  string
	Selected   lipgloss.Border

	rarity map[domain.Rarity]lipgloss.Color
}

// Rarity tier colors, shared by both skins.
var rarityColors = map[domain.Rarity]lipgloss.Color{
	domain.RarityCommon:    lipgloss.Color("#9ca3af"),
	domain.RarityRare:      lipgloss.Color("#60a5fa"),
	domain.RarityEpic:      lipgloss.Color("#c084fc"),
	domain.RarityLegendary: lipgloss.Color("#facc15"),
}

// SkinFor returns the named skin, falling back to the grimoire skin.
func SkinFor(name string) Skin {
	if strings.EqualFold(name, "pixel") {
		return pixelSkin()
	}
	return grimoireSkin()
}

// RarityColor is the border and badge color for a tier.
func (s Skin) RarityColor(r domain.Rarity) lipgloss.Color {
	if c, ok := s.rarity[r]; ok {
		return c
	}
	return s.rarity[domain.RarityCommon]
}

// grimoireSkin is the soft purple palette.
func grimoireSkin() Skin {
	purple := lipgloss.Color("#c4b5fd")
	dim := lipgloss.Color("#71717a")

	return Skin{
		Name:    "grimoire",
		Glamour: styles.DraculaStyle,

		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f0abfc")).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(purple).Italic(true),
		Banner:   lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa")),

		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1e1b4b")).
			Background(lipgloss.Color("#a78bfa")).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(purple).
			Background(lipgloss.Color("#312e81")).
			Padding(0, 2),

		Speaker:   lipgloss.NewStyle().Foreground(purple).Bold(true),
		Timestamp: lipgloss.NewStyle().Foreground(dim),
		AIBubble:  lipgloss.NewStyle().Foreground(lipgloss.Color("#e9d5ff")).PaddingLeft(2),
		UserText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#bae6fd")),
		Typing:    lipgloss.NewStyle().Foreground(purple).Italic(true),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa")),

		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Label:    lipgloss.NewStyle().Foreground(purple).Bold(true),
		Effect:   lipgloss.NewStyle().Foreground(lipgloss.Color("#86efac")),
		Muted:    lipgloss.NewStyle().Foreground(dim),
		Position: lipgloss.NewStyle().Foreground(dim),

		Controls: lipgloss.NewStyle().Foreground(lipgloss.Color("#ddd6fe")),
		VolFill:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f0abfc")),
		VolEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("#4c1d95")),
		Playing:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
		Paused:   lipgloss.NewStyle().Foreground(dim),
		Silenced: lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#a78bfa")).
			Padding(1, 2),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a")),

		PlayGlyph:  "▶",
		PauseGlyph: "❚❚",
		SoundGlyph: "♪",
		MuteGlyph:  "✕",
		FillRune:   "━",
		EmptyRune:  "─",
		Selected:   lipgloss.ThickBorder(),

		rarity: rarityColors,
	}
}

// pixelSkin is the high-contrast arcade palette.
func pixelSkin() Skin {
	cyan := lipgloss.Color("#22d3ee")
	pink := lipgloss.Color("#f472b6")
	dim := lipgloss.Color("#64748b")

	return Skin{
		Name:    "pixel",
		Glamour: styles.PinkStyle,

		Title:    lipgloss.NewStyle().Foreground(pink).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(cyan),
		Banner:   lipgloss.NewStyle().Foreground(cyan),

		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0f172a")).
			Background(pink).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(cyan).
			Background(lipgloss.Color("#1e293b")).
			Padding(0, 2),

		Speaker:   lipgloss.NewStyle().Foreground(pink).Bold(true),
		Timestamp: lipgloss.NewStyle().Foreground(dim),
		AIBubble:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f5d0fe")).PaddingLeft(2),
		UserText:  lipgloss.NewStyle().Foreground(cyan),
		Typing:    lipgloss.NewStyle().Foreground(pink),
		Prompt:    lipgloss.NewStyle().Foreground(pink),

		Card:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Label:    lipgloss.NewStyle().Foreground(cyan).Bold(true),
		Effect:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
		Muted:    lipgloss.NewStyle().Foreground(dim),
		Position: lipgloss.NewStyle().Foreground(pink),

		Controls: lipgloss.NewStyle().Foreground(cyan),
		VolFill:  lipgloss.NewStyle().Foreground(pink),
		VolEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("#334155")),
		Playing:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true),
		Paused:   lipgloss.NewStyle().Foreground(dim),
		Silenced: lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.BlockBorder()).
			BorderForeground(pink).
			Padding(1, 2),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("#facc15")),

		PlayGlyph:  ">",
		PauseGlyph: "||",
		SoundGlyph: "+",
		MuteGlyph:  "x",
		FillRune:   "█",
		EmptyRune:  "░",
		Selected:   lipgloss.DoubleBorder(),

		rarity: rarityColors,
	}
}
