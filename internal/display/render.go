package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hammamikhairi/alchemy/internal/chat"
	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/workshop"
)

const (
	appTitle    = "✨ Mystical Alchemy Workshop ✨"
	appSubtitle = "AI-Powered Magical Brewing Assistant"

	// volBarCells is the width of the clickable volume track.
	volBarCells = 21
	// cardLines is the content height of a recipe card, borders excluded.
	cardLines = 5
)

// ── Header ───────────────────────────────────────────────────────

// controlsPrefix is everything drawn left of the volume bar. Its width
// locates the bar for mouse hit-testing.
func controlsPrefix(st domain.AudioState, skin Skin) string {
	var play string
	if st.IsPlaying {
		play = skin.Playing.Render(skin.PauseGlyph + " Playing")
	} else {
		play = skin.Paused.Render(skin.PlayGlyph + " Paused ")
	}

	sound := skin.Controls.Render(skin.SoundGlyph)
	if st.IsMuted {
		sound = skin.Silenced.Render(skin.MuteGlyph)
	}

	return " " + play + skin.Muted.Render("  │  ") + sound + skin.Controls.Render(" Vol ")
}

// renderVolumeBar draws the track filled to the effective volume.
func renderVolumeBar(st domain.AudioState, skin Skin) string {
	filled := st.EffectiveVolume() * volBarCells / domain.MaxVolume
	return skin.VolFill.Render(strings.Repeat(skin.FillRune, filled)) +
		skin.VolEmpty.Render(strings.Repeat(skin.EmptyRune, volBarCells-filled))
}

func renderControls(st domain.AudioState, skin Skin) string {
	label := fmt.Sprintf(" %3d%%", st.Volume)
	if st.IsMuted {
		label = " muted"
	}
	return controlsPrefix(st, skin) + renderVolumeBar(st, skin) + skin.Controls.Render(label)
}

// volumeBarHit maps a click at column x on the controls row to a position
// along the volume track. ok is false when the click missed the track.
func volumeBarHit(st domain.AudioState, skin Skin, x int) (offset float64, ok bool) {
	start := lipgloss.Width(controlsPrefix(st, skin))
	if x < start || x >= start+volBarCells {
		return 0, false
	}
	return float64(x - start), true
}

func renderTabs(active domain.Tab, skin Skin) string {
	chatTab, bookTab := skin.TabInactive, skin.TabInactive
	if active == domain.TabChat {
		chatTab = skin.TabActive
	} else {
		bookTab = skin.TabActive
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		chatTab.Render("🔮 AI "+chat.AlchemistName),
		" ",
		bookTab.Render("📚 Recipe Grimoire"),
	)
}

// ── Chat ─────────────────────────────────────────────────────────

// renderMessages lays the log out for the chat viewport: Arcanum on the
// left, the user on the right.
func renderMessages(msgs []domain.Message, skin Skin, width int) string {
	if width < 20 {
		width = 20
	}
	bubble := width * 3 / 4

	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		ts := skin.Timestamp.Render(msg.Timestamp.Format("15:04"))

		if msg.Type == domain.MessageAI {
			b.WriteString(skin.Speaker.Render("⚗️ "+chat.AlchemistName) + " " + ts + "\n")
			b.WriteString(skin.AIBubble.Width(bubble).Render(msg.Content))
			continue
		}

		head := ts + " " + skin.Speaker.Render("You")
		body := skin.UserText.Width(bubble).Align(lipgloss.Right).Render(msg.Content)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, head) + "\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, body))
	}
	return b.String()
}

// ── Grimoire ─────────────────────────────────────────────────────

// truncate cuts s to w cells, counting emoji as double width.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

// renderCard draws one recipe. pos is its 1-based position for /del #n.
func renderCard(r *domain.Recipe, skin Skin, width, pos int, selected bool) string {
	inner := width - 4 // border and padding
	if inner < 10 {
		inner = 10
	}

	tier := skin.RarityColor(r.Rarity)
	posTag := skin.Position.Render(fmt.Sprintf("#%d", pos))
	name := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Color)).Bold(true).
		Render(truncate(r.Icon+" "+r.Name, inner-lipgloss.Width(posTag)-1))
	title := name + strings.Repeat(" ", max(1, inner-lipgloss.Width(name)-lipgloss.Width(posTag))) + posTag

	badge := lipgloss.NewStyle().Foreground(tier).Render("⭐ " + r.Rarity.String())

	ingredients := skin.Label.Render("Ingredients: ") +
		truncate(strings.Join(r.Ingredients, ", "), inner-len("Ingredients: "))
	difficulty := skin.Label.Render("Difficulty: ") + truncate(r.Difficulty, inner-len("Difficulty: "))
	effect := skin.Effect.Render(truncate("🌟 "+r.Effect, inner))

	style := skin.Card.BorderForeground(tier).Width(width - 2)
	if selected {
		style = style.Border(skin.Selected).BorderForeground(tier)
	}
	return style.Render(strings.Join([]string{title, badge, ingredients, difficulty, effect}, "\n"))
}

// renderGrimoire lays out every visible card and returns the starting line
// of each, for scrolling the selection into view.
func renderGrimoire(snap workshop.Snapshot, skin Skin, width, selected int) (string, []int) {
	if len(snap.Recipes) == 0 {
		msg := "The grimoire is empty. Press ctrl+n to brew something."
		if snap.Filter != "" {
			msg = fmt.Sprintf("No recipe matches %q.", snap.Filter)
		}
		return skin.Muted.Render(msg), nil
	}

	var (
		b       strings.Builder
		offsets []int
		line    int
	)
	write := func(s string) int {
		if b.Len() > 0 {
			b.WriteByte('\n')
			line++
		}
		start := line
		b.WriteString(s)
		line += strings.Count(s, "\n")
		return start
	}

	pos := 0
	drawCard := func(r *domain.Recipe) {
		pos++
		offsets = append(offsets, write(renderCard(r, skin, width, pos, pos-1 == selected)))
	}

	if snap.Grouped {
		for _, g := range snap.Groups {
			write(lipgloss.NewStyle().Foreground(skin.RarityColor(g.Rarity)).Bold(true).
				Render(fmt.Sprintf("── %s (%d) ──", g.Rarity, len(g.Recipes))))
			for _, r := range g.Recipes {
				drawCard(r)
			}
		}
	} else {
		for _, r := range snap.Recipes {
			drawCard(r)
		}
	}
	return b.String(), offsets
}

func grimoireHeader(snap workshop.Snapshot, skin Skin) string {
	count := fmt.Sprintf("%d mystical formulas catalogued", len(snap.Recipes))
	if snap.Filter != "" {
		count += fmt.Sprintf(" matching %q", snap.Filter)
	}
	if snap.Grouped {
		count += ", grouped by rarity"
	}
	return skin.Title.Render("📚 Recipe Grimoire") + "  " + skin.Muted.Render(count)
}

// ── Modal ────────────────────────────────────────────────────────

func renderModal(content string, skin Skin, width, height int) string {
	box := skin.Modal.Render(content + "\n" + skin.Muted.Render("esc to close"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
