package display

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/alchemy/internal/audio"
	"github.com/hammamikhairi/alchemy/internal/chat"
	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/idgen"
	"github.com/hammamikhairi/alchemy/internal/logger"
	"github.com/hammamikhairi/alchemy/internal/nav"
	"github.com/hammamikhairi/alchemy/internal/recipe"
	"github.com/hammamikhairi/alchemy/internal/workshop"
)

type fixedRand int

func (f fixedRand) Intn(n int) int { return int(f) % n }

// echoElement confirms every control call on its event channel.
type echoElement struct {
	events chan domain.MediaEvent
}

func (e *echoElement) Play(context.Context) error {
	e.events <- domain.MediaEvent{Type: domain.MediaPlay}
	return nil
}

func (e *echoElement) Pause() error {
	e.events <- domain.MediaEvent{Type: domain.MediaPause}
	return nil
}

func (e *echoElement) SetVolume(float64) {}
func (e *echoElement) SetMuted(bool) {}
func (e *echoElement) SetLoop(bool) {}
func (e *echoElement) Events() <-chan domain.MediaEvent { return e.events }
func (e *echoElement) Close() error { return nil }

func setupModel(t *testing.T, skinName string) (model, *workshop.Workshop, *echoElement) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	ids := idgen.New(func() time.Time { return time.UnixMilli(1_700_000_000_000) })
	el := &echoElement{events: make(chan domain.MediaEvent, 8)}

	conv := chat.NewConversation(chat.NewCannedResponder(fixedRand(0)), ids, log, chat.WithDelay(time.Millisecond))
	ws := workshop.New(conv, recipe.NewCatalog(ids, fixedRand(1), log),
		audio.NewController(el, audio.DefaultVolume, log), nav.New(log), log)

	m, err := newModel(context.Background(), ws, SkinFor(skinName), el.Events(), log)
	require.NoError(t, err)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, ws, el
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out
}

func updateCmd(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out, cmd
}

func typeText(t *testing.T, m model, s string) model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestSendAndReply(t *testing.T) {
	m, ws, _ := setupModel(t, "grimoire")
	ctx := context.Background()

	m = typeText(t, m, "Feuertrank")
	assert.Equal(t, "Feuertrank", ws.Input())

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	snap := ws.Snapshot(ctx)
	assert.Len(t, snap.Messages, 2)
	assert.True(t, snap.Typing)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), chat.LineBrewing())

	// The only follow-up is the reply tick.
	msg := cmd()
	due, ok := msg.(replyDueMsg)
	require.True(t, ok, "got %T", msg)

	m = update(t, m, due)
	snap = ws.Snapshot(ctx)
	require.Len(t, snap.Messages, 3)
	assert.False(t, snap.Typing)
	assert.Equal(t, chat.Responses()[0], snap.Messages[2].Content)
	assert.NotContains(t, m.View(), chat.LineBrewing())
}

func TestEnterOnBlankInputDoesNothing(t *testing.T) {
	m, ws, _ := setupModel(t, "grimoire")

	m = typeText(t, m, "   ")
	_, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Len(t, ws.Snapshot(context.Background()).Messages, 1)
}

func TestPlayPauseFollowsMediaEvents(t *testing.T) {
	m, ws, el := setupModel(t, "pixel")
	ctx := context.Background()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.False(t, ws.Snapshot(ctx).Audio.IsPlaying, "state must wait for the element")

	cmd := waitForMedia(el.Events())
	m = update(t, m, cmd())
	assert.True(t, ws.Snapshot(ctx).Audio.IsPlaying)
	assert.Contains(t, m.View(), "Playing")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	m = update(t, m, cmd())
	assert.False(t, ws.Snapshot(ctx).Audio.IsPlaying)
	assert.Contains(t, m.View(), "Paused")
}

func TestVolumeKeysAndMute(t *testing.T) {
	m, ws, _ := setupModel(t, "grimoire")
	ctx := context.Background()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp, Alt: true})
	assert.Equal(t, 55, ws.Snapshot(ctx).Audio.Volume)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown, Alt: true})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown, Alt: true})
	assert.Equal(t, 45, ws.Snapshot(ctx).Audio.Volume)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	st := ws.Snapshot(ctx).Audio
	assert.True(t, st.IsMuted)
	assert.Equal(t, 45, st.Volume)
	assert.Contains(t, m.View(), "muted")
}

func TestClickVolumeBar(t *testing.T) {
	m, ws, _ := setupModel(t, "grimoire")
	ctx := context.Background()

	start := lipgloss.Width(controlsPrefix(ws.Snapshot(ctx).Audio, m.skin))
	click := func(x, y int) {
		m = update(t, m, tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	}

	click(start, 0)
	assert.Equal(t, 0, ws.Snapshot(ctx).Audio.Volume)

	click(start+volBarCells-1, 0)
	assert.Equal(t, 100, ws.Snapshot(ctx).Audio.Volume)

	click(start+(volBarCells-1)/2, 0)
	assert.Equal(t, 50, ws.Snapshot(ctx).Audio.Volume)

	// Off the track, or on another row: ignored.
	click(start+volBarCells+3, 0)
	click(start+2, 5)
	assert.Equal(t, 50, ws.Snapshot(ctx).Audio.Volume)
}

func TestDragVolumeIsThrottled(t *testing.T) {
	m, ws, _ := setupModel(t, "grimoire")
	ctx := context.Background()

	start := lipgloss.Width(controlsPrefix(ws.Snapshot(ctx).Audio, m.skin))
	drag := func(x int) {
		m = update(t, m, tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	}

	drag(start)
	assert.Equal(t, 0, ws.Snapshot(ctx).Audio.Volume)

	// Too soon after the last drag update.
	drag(start + volBarCells - 1)
	assert.Equal(t, 0, ws.Snapshot(ctx).Audio.Volume)

	// A press always lands.
	m = update(t, m, tea.MouseMsg{X: start + volBarCells - 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 100, ws.Snapshot(ctx).Audio.Volume)
}

func TestGrimoireKeys(t *testing.T) {
	m, ws, _ := setupModel(t, "grimoire")
	ctx := context.Background()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, domain.TabRecipes, ws.Snapshot(ctx).Nav.ActiveTab)
	assert.Contains(t, m.View(), "3 mystical formulas catalogued")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	recipes := ws.Snapshot(ctx).Recipes
	require.Len(t, recipes, 4)
	assert.Equal(t, "Frost Shield Elixir", recipes[3].Name)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	recipes = ws.Snapshot(ctx).Recipes
	require.Len(t, recipes, 3)
	for _, r := range recipes {
		assert.NotEqual(t, int64(2), r.ID, "Ethereal Veil Elixir should be gone")
	}

	// Selection stays in range as the list shrinks.
	for i := 0; i < 5; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 2, m.selected)
	for i := 0; i < 3; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	}
	assert.Empty(t, ws.Snapshot(ctx).Recipes)
	assert.Equal(t, 0, m.selected)
	assert.Contains(t, m.View(), "grimoire is empty")

	// Tab back to chat refocuses the input.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.TabChat, ws.Snapshot(ctx).Nav.ActiveTab)
	assert.True(t, m.input.Focused())
}

func TestGroupKey(t *testing.T) {
	m, ws, _ := setupModel(t, "pixel")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})

	snap := ws.Snapshot(context.Background())
	require.True(t, snap.Grouped)
	assert.Equal(t, "Lightning Strike Potion", snap.Recipes[0].Name)
	assert.Contains(t, m.View(), "grouped by rarity")
}

func TestAboutModal(t *testing.T) {
	m, ws, _ := setupModel(t, "grimoire")

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	require.NotNil(t, cmd)
	assert.False(t, ws.Snapshot(context.Background()).ShowTeam)
	assert.Contains(t, m.View(), "Summoning the team")

	m = update(t, m, cmd())
	assert.True(t, ws.Snapshot(context.Background()).ShowTeam)
	assert.Contains(t, m.View(), "Mirelle")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	nav := ws.Snapshot(context.Background()).Nav
	assert.False(t, nav.AboutOpen)
	assert.False(t, nav.VideoLoaded)
	assert.Empty(t, m.teamContent)
}

func TestStaleTeamLoadIgnored(t *testing.T) {
	m, ws, _ := setupModel(t, "grimoire")

	m, first := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})

	// The first open's load lands after the reopen.
	m = update(t, m, first())
	assert.False(t, ws.Snapshot(context.Background()).ShowTeam)
	assert.Empty(t, m.teamContent)
}

func TestSlashCommandsFromInput(t *testing.T) {
	m, ws, _ := setupModel(t, "grimoire")
	ctx := context.Background()

	m = typeText(t, m, "/about")
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, ws.Snapshot(ctx).Nav.AboutOpen)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m = typeText(t, m, "/help")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "/find")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, ws.Status())

	m = typeText(t, m, "/quit")
	_, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewBeforeResize(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	ids := idgen.New(nil)
	conv := chat.NewConversation(chat.NewCannedResponder(fixedRand(0)), ids, log)
	ws := workshop.New(conv, recipe.NewCatalog(ids, fixedRand(0), log),
		audio.NewController(audio.NewNoOpElement(log), 50, log), nav.New(log), log)

	m, err := newModel(context.Background(), ws, SkinFor("grimoire"), nil, log)
	require.NoError(t, err)
	var view string
	assert.NotPanics(t, func() { view = m.View() })
	assert.Nil(t, waitForMedia(nil))

	// No size yet: the banner is centred on the terminal's own width.
	assert.Contains(t, view, RenderBanner(termWidth(), m.skin.Banner))
}

func TestRenderBannerCentres(t *testing.T) {
	out := RenderBanner(120, lipgloss.NewStyle())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, bannerLines)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "   "), "line %q not padded", l)
	}
}

func TestRenderBannerMeasuresTerminal(t *testing.T) {
	style := lipgloss.NewStyle()
	assert.Equal(t, RenderBanner(termWidth(), style), RenderBanner(0, style))
	assert.Equal(t, RenderBanner(termWidth(), style), RenderBanner(-1, style))
}

func TestSkinFor(t *testing.T) {
	assert.Equal(t, "pixel", SkinFor("PIXEL").Name)
	assert.Equal(t, "grimoire", SkinFor("grimoire").Name)
	assert.Equal(t, "grimoire", SkinFor("neon").Name)

	skin := SkinFor("grimoire")
	assert.NotEqual(t, skin.RarityColor(domain.RarityCommon), skin.RarityColor(domain.RarityLegendary))
}

func TestTeamRendererCaches(t *testing.T) {
	team, err := newTeamRenderer(4)
	require.NoError(t, err)

	a, err := team.Render(SkinFor("grimoire"), 60)
	require.NoError(t, err)
	b, err := team.Render(SkinFor("grimoire"), 60)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, team.Len())

	_, err = team.Render(SkinFor("pixel"), 60)
	require.NoError(t, err)
	assert.Equal(t, 2, team.Len())
}

func TestRenderCardTruncatesLongNames(t *testing.T) {
	r := &domain.Recipe{
		ID:          7,
		Name:        strings.Repeat("Very Long Potion Name ", 10),
		Ingredients: []string{"Moonbell Petals"},
		Difficulty:  "Master",
		Effect:      "Glows",
		Rarity:      domain.RarityEpic,
		Color:       "#9b59b6",
		Icon:        "👻",
	}
	card := renderCard(r, SkinFor("grimoire"), 40, 1, false)
	for _, line := range strings.Split(card, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
	assert.Equal(t, cardLines+2, lipgloss.Height(card))
}
