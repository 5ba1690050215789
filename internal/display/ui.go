// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type runs a full-screen program over a [workshop.Workshop]:
// every keypress, click, timer and media event becomes a call into the
// workshop, and View renders the workshop's snapshot.
package display

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/time/rate"

	"github.com/hammamikhairi/alchemy/internal/chat"
	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/logger"
	"github.com/hammamikhairi/alchemy/internal/workshop"
)

// teamCacheSize bounds the rendered-bios cache (one entry per skin and
// width seen).
const teamCacheSize = 16

// dragInterval throttles volume updates while the mouse drags along the
// bar. Presses are never throttled.
const dragInterval = 40 * time.Millisecond

// ── UI ───────────────────────────────────────────────────────────

// UI owns the Bubble Tea program. Call [NewUI] then [UI.Run] (blocking).
type UI struct {
	ws      *workshop.Workshop
	skin    Skin
	log     *logger.Logger
	events  <-chan domain.MediaEvent
	program *tea.Program
}

// NewUI creates the display. events is the media element's stream; nil
// means no music events.
func NewUI(ws *workshop.Workshop, skin Skin, events <-chan domain.MediaEvent, log *logger.Logger) *UI {
	return &UI{ws: ws, skin: skin, events: events, log: log}
}

// Run starts the Bubble Tea event loop. Blocks until the user quits or
// ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	m, err := newModel(ctx, u.ws, u.skin, u.events, u.log)
	if err != nil {
		return err
	}

	u.program = tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err = u.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ctx    context.Context
	ws     *workshop.Workshop
	skin   Skin
	log    *logger.Logger
	events <-chan domain.MediaEvent
	team   *teamRenderer
	drag   *rate.Limiter

	keys     keyMap
	help     help.Model
	input    textinput.Model
	spinner  spinner.Model
	chatView viewport.Model
	bookView viewport.Model

	teamContent  string
	selected     int
	cardOffsets  []int
	seenMessages int
	width        int
	height       int
}

// replyDueMsg fires when a scheduled reply's delay has elapsed.
type replyDueMsg struct{ token uint64 }

// mediaMsg carries one event from the music element.
type mediaMsg domain.MediaEvent

// teamMsg reports that the about modal's content finished loading.
type teamMsg struct {
	gen     uint64
	content string
	err     error
}

func newModel(ctx context.Context, ws *workshop.Workshop, skin Skin, events <-chan domain.MediaEvent, log *logger.Logger) (model, error) {
	team, err := newTeamRenderer(teamCacheSize)
	if err != nil {
		return model{}, err
	}

	ti := textinput.New()
	// Plain-text prompt keeps textinput's width math correct.
	ti.Prompt = "⚗ "
	ti.PromptStyle = skin.Prompt
	ti.TextStyle = skin.UserText
	ti.Placeholder = "🔮 Ask about magical recipes... (/help for commands)"
	ti.PlaceholderStyle = skin.Muted
	ti.CharLimit = 500
	ti.Width = 60 // updated on first WindowSizeMsg
	ti.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Moon),
		spinner.WithStyle(skin.Typing),
	)

	h := help.New()
	h.Styles.ShortKey = skin.Label
	h.Styles.ShortDesc = skin.Muted
	h.Styles.FullKey = skin.Label
	h.Styles.FullDesc = skin.Muted

	chatView := viewport.New(80, 10)
	chatView.MouseWheelEnabled = true
	bookView := viewport.New(80, 10)
	bookView.MouseWheelEnabled = true

	m := model{
		ctx:      ctx,
		ws:       ws,
		skin:     skin,
		log:      log,
		events:   events,
		team:     team,
		drag:     rate.NewLimiter(rate.Every(dragInterval), 1),
		keys:     defaultKeyMap(),
		help:     h,
		input:    ti,
		spinner:  sp,
		chatView: chatView,
		bookView: bookView,
	}
	m.refresh()
	return m, nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForMedia(m.events),
		tea.SetWindowTitle("Mystical Alchemy Workshop"),
	)
}

// waitForMedia blocks on the next element event. Re-armed after each one.
func waitForMedia(events <-chan domain.MediaEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return mediaMsg(ev)
	}
}

func scheduleReply(p *chat.Pending) tea.Cmd {
	return tea.Tick(p.Delay, func(time.Time) tea.Msg {
		return replyDueMsg{token: p.Token}
	})
}

// loadTeam renders the bios off the event loop; the result stands in for
// the intro media's "loaded" signal.
func (m model) loadTeam(gen uint64) tea.Cmd {
	team, skin, width := m.team, m.skin, m.modalWidth()
	return func() tea.Msg {
		out, err := team.Render(skin, width)
		return teamMsg{gen: gen, content: out, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m, cmd = m.handleMouse(msg)

	case replyDueMsg:
		if _, err := m.ws.DeliverReply(msg.token); err != nil {
			m.log.Warn("reply %d: %v", msg.token, err)
		}

	case mediaMsg:
		m.ws.HandleMediaEvent(domain.MediaEvent(msg))
		cmd = waitForMedia(m.events)

	case teamMsg:
		if msg.err != nil {
			m.log.Error("team bios: %v", msg.err)
			msg.content = m.skin.Muted.Render("The scrying glass is cloudy today.")
		}
		if m.ws.MarkVideoLoaded(msg.gen) {
			m.teamContent = msg.content
		}

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		m.input, cmd = m.input.Update(msg)
	}

	m.refresh()
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	nav := m.ws.Snapshot(m.ctx).Nav

	// Global keys.
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PlayPause):
		_ = m.ws.TogglePlayPause(m.ctx) // logged and shown on the status line
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		m.ws.ToggleMute()
		return m, nil
	case key.Matches(msg, m.keys.VolUp):
		m.ws.StepVolume(volumeStep)
		return m, nil
	case key.Matches(msg, m.keys.VolDown):
		m.ws.StepVolume(-volumeStep)
		return m, nil
	}

	if nav.AboutOpen {
		if key.Matches(msg, m.keys.Close) {
			m.ws.CloseAbout()
			m.teamContent = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.About):
		return m, m.loadTeam(m.ws.OpenAbout())
	case key.Matches(msg, m.keys.SwitchTab):
		if nav.ActiveTab == domain.TabChat {
			m.ws.SwitchTab(domain.TabRecipes)
			m.input.Blur()
			return m, nil
		}
		m.ws.SwitchTab(domain.TabChat)
		focus := m.input.Focus()
		return m, focus
	case key.Matches(msg, m.keys.Add):
		if _, err := m.ws.AddRecipe(m.ctx); err != nil {
			m.log.Error("add recipe: %v", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.Close):
		m.ws.ClearStatus()
		return m, nil
	}

	if nav.ActiveTab == domain.TabRecipes {
		return m.handleGrimoireKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m model) handleChatKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Send):
		return m.submit()
	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDn):
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ws.SetInput(m.input.Value())
	return m, cmd
}

func (m model) handleGrimoireKey(msg tea.KeyMsg) (model, tea.Cmd) {
	n := len(m.ws.Snapshot(m.ctx).Recipes)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < n-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Delete):
		if n > 0 {
			if _, err := m.ws.DeleteRecipeAt(m.ctx, m.selected+1); err != nil {
				m.log.Error("delete recipe: %v", err)
			}
		}
	case key.Matches(msg, m.keys.GridVolUp):
		m.ws.StepVolume(volumeStep)
	case key.Matches(msg, m.keys.GridVolDn):
		m.ws.StepVolume(-volumeStep)
	case key.Matches(msg, m.keys.Group):
		m.ws.ToggleGrouping()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}
	return m, nil
}

// submit hands the input line to the workshop and schedules whatever
// follow-up it asks for.
func (m model) submit() (model, tea.Cmd) {
	m.ws.SetInput(m.input.Value())
	res, err := m.ws.Submit(m.ctx)
	m.input.SetValue(m.ws.Input())
	m.input.CursorEnd()

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrEmptyMessage):
		// Silently ignored.
	default:
		// The workshop has already put it on the status line.
		m.log.Debug("submit: %v", err)
	}

	var cmds []tea.Cmd
	if res.Reply != nil {
		cmds = append(cmds, scheduleReply(res.Reply))
	}
	if res.LoadGen != 0 {
		cmds = append(cmds, m.loadTeam(res.LoadGen))
	}
	if res.Quit {
		cmds = append(cmds, tea.Quit)
	}
	if m.ws.Snapshot(m.ctx).Nav.ActiveTab == domain.TabRecipes {
		m.input.Blur()
	}
	return m, tea.Batch(cmds...)
}

func (m model) handleMouse(msg tea.MouseMsg) (model, tea.Cmd) {
	snap := m.ws.Snapshot(m.ctx)

	if msg.Button == tea.MouseButtonLeft &&
		(msg.Action == tea.MouseActionPress || msg.Action == tea.MouseActionMotion) &&
		msg.Y == 0 {
		if msg.Action == tea.MouseActionMotion && !m.drag.Allow() {
			return m, nil
		}
		if x, ok := volumeBarHit(snap.Audio, m.skin, msg.X); ok {
			m.ws.SetVolumeFromClickPosition(x, volBarCells-1)
		}
		return m, nil
	}

	if !tea.MouseEvent(msg).IsWheel() || snap.Nav.AboutOpen {
		return m, nil
	}
	var cmd tea.Cmd
	if snap.Nav.ActiveTab == domain.TabChat {
		m.chatView, cmd = m.chatView.Update(msg)
	} else {
		m.bookView, cmd = m.bookView.Update(msg)
	}
	return m, cmd
}

// ── Layout ───────────────────────────────────────────────────────

// compact reports whether the banner is dropped to save rows. Before the
// first WindowSizeMsg the height is unknown and the banner is kept.
func (m model) compact() bool {
	return m.height > 0 && m.height < 24
}

func (m model) headerHeight() int {
	h := 1 + 1 + 1 + 1 // controls, subtitle, tabs, gap
	if !m.compact() {
		h += bannerLines
	}
	return h
}

// bodyHeight is the rows left for the active tab.
func (m model) bodyHeight() int {
	footer := 1 + lipgloss.Height(m.help.View(m.keys))
	return max(3, m.height-m.headerHeight()-footer)
}

func (m model) modalWidth() int {
	return max(30, min(76, m.width-8))
}

func (m *model) layout() {
	body := m.bodyHeight()
	m.chatView.Width = m.width
	m.chatView.Height = max(1, body-2) // typing line and input
	m.bookView.Width = m.width
	m.bookView.Height = max(1, body-2) // heading and gap
	m.input.Width = max(10, m.width-lipgloss.Width(m.input.Prompt)-1)
	m.help.Width = m.width
	m.seenMessages = -1 // force a re-render at the new width
}

// refresh copies the workshop state into the viewports.
func (m *model) refresh() {
	snap := m.ws.Snapshot(m.ctx)
	m.keys.tab = snap.Nav.ActiveTab

	if len(snap.Messages) != m.seenMessages {
		m.chatView.SetContent(renderMessages(snap.Messages, m.skin, m.chatView.Width))
		m.chatView.GotoBottom()
		m.seenMessages = len(snap.Messages)
	}

	if m.selected >= len(snap.Recipes) {
		m.selected = max(0, len(snap.Recipes)-1)
	}
	content, offsets := renderGrimoire(snap, m.skin, m.bookView.Width, m.selected)
	m.bookView.SetContent(content)
	m.cardOffsets = offsets
	m.scrollToSelected()
}

func (m *model) scrollToSelected() {
	if m.selected >= len(m.cardOffsets) {
		return
	}
	top := m.cardOffsets[m.selected]
	bottom := top + cardLines + 2
	switch {
	case top < m.bookView.YOffset:
		m.bookView.SetYOffset(top)
	case bottom > m.bookView.YOffset+m.bookView.Height:
		m.bookView.SetYOffset(bottom - m.bookView.Height)
	}
}

// ── View ─────────────────────────────────────────────────────────

func (m model) View() string {
	snap := m.ws.Snapshot(m.ctx)
	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(renderControls(snap.Audio, m.skin))
	b.WriteByte('\n')
	if !m.compact() {
		// Zero until the first WindowSizeMsg; the banner then measures
		// the terminal itself.
		b.WriteString(RenderBanner(m.width, m.skin.Banner))
		b.WriteByte('\n')
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		m.skin.Title.Render(appTitle)+"  "+m.skin.Subtitle.Render(appSubtitle)))
	b.WriteByte('\n')
	b.WriteString(renderTabs(snap.Nav.ActiveTab, m.skin))
	b.WriteString("\n\n")

	notice := snap.Status
	switch {
	case snap.Nav.AboutOpen:
		b.WriteString(renderModal(m.modalContent(snap), m.skin, width, m.bodyHeight()))
	case strings.Contains(notice, "\n"):
		// Long notices (the command list) take over the body until esc.
		b.WriteString(renderModal(m.skin.Status.Render(notice), m.skin, width, m.bodyHeight()))
		notice = ""
	case snap.Nav.ActiveTab == domain.TabRecipes:
		b.WriteString(grimoireHeader(snap, m.skin))
		b.WriteString("\n\n")
		b.WriteString(m.bookView.View())
	default:
		b.WriteString(m.chatView.View())
		b.WriteByte('\n')
		if snap.Typing {
			b.WriteString(m.spinner.View() + " " + m.skin.Typing.Render(chat.LineBrewing()))
		}
		b.WriteByte('\n')
		b.WriteString(m.input.View())
	}

	b.WriteByte('\n')
	b.WriteString(m.skin.Status.Render(notice))
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) modalContent(snap workshop.Snapshot) string {
	if !snap.ShowTeam {
		return m.spinner.View() + " " + m.skin.Typing.Render("Summoning the team...")
	}
	return strings.TrimSpace(m.teamContent)
}
