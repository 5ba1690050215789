// Package workshop is the single owned state container behind the UI. Every
// user action enters through one of its methods; the display only renders
// Snapshots and schedules the delays the workshop hands back.
package workshop

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/alchemy/internal/audio"
	"github.com/hammamikhairi/alchemy/internal/chat"
	"github.com/hammamikhairi/alchemy/internal/command"
	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/logger"
	"github.com/hammamikhairi/alchemy/internal/nav"
	"github.com/hammamikhairi/alchemy/internal/recipe"
)

// Option configures the workshop.
type Option func(*Workshop)

// WithParser replaces the default slash-command parser.
func WithParser(p *command.Parser) Option {
	return func(w *Workshop) {
		w.parser = p
	}
}

// RecipeSearcher is an optional interface that RecipeStore implementations
// can satisfy to support filtering the grimoire.
type RecipeSearcher interface {
	Search(ctx context.Context, query string) ([]*domain.Recipe, error)
}

// Workshop owns every component of the app.
type Workshop struct {
	conv    *chat.Conversation
	recipes domain.RecipeStore
	audio   *audio.Controller
	nav     *nav.Navigator
	parser  *command.Parser
	log     *logger.Logger

	mu      sync.Mutex
	input   string
	status  string
	filter  string
	grouped bool
}

// Result tells the caller what follow-up work an action needs.
type Result struct {
	Reply   *chat.Pending // schedule DeliverReply after Reply.Delay
	LoadGen uint64        // non-zero: the about modal opened, load its media for this generation
	Quit    bool
}

// Snapshot is a render-ready copy of the whole state.
type Snapshot struct {
	Messages []domain.Message
	Typing   bool

	// Recipes is the grimoire in display order: filtered, and flattened
	// by tier when Grouped.
	Recipes []*domain.Recipe
	Groups  []recipe.RarityGroup // set when Grouped
	Filter  string
	Grouped bool

	Audio    domain.AudioState
	Nav      domain.NavState
	ShowTeam bool
	Input    string
	Status   string
}

// New wires the components together.
func New(conv *chat.Conversation, recipes domain.RecipeStore, ctrl *audio.Controller, navigator *nav.Navigator, log *logger.Logger, opts ...Option) *Workshop {
	w := &Workshop{
		conv:    conv,
		recipes: recipes,
		audio:   ctrl,
		nav:     navigator,
		log:     log,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.parser == nil {
		w.parser = command.NewParser(log.With("command"))
	}
	return w
}

// SetInput replaces the chat input buffer.
func (w *Workshop) SetInput(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = s
}

// Input returns the chat input buffer.
func (w *Workshop) Input() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// Status returns the last notice for the status line.
func (w *Workshop) Status() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Workshop) setStatus(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = fmt.Sprintf(format, args...)
}

// ClearStatus dismisses the status line.
func (w *Workshop) ClearStatus() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = ""
}

// Submit acts on the input buffer: slash commands are executed, anything
// else is sent to Arcanum. The buffer is cleared unless the input was
// blank or refused.
func (w *Workshop) Submit(ctx context.Context) (Result, error) {
	input := w.Input()
	cmd := w.parser.Parse(input)

	var (
		res Result
		err error
	)
	if cmd.Type == domain.CommandNone {
		res.Reply, err = w.SendMessage(input)
	} else {
		res, err = w.Execute(ctx, cmd)
	}

	if errors.Is(err, domain.ErrEmptyMessage) || errors.Is(err, domain.ErrReplyPending) {
		return res, err
	}
	w.SetInput("")
	return res, err
}

// SendMessage appends a user message and returns the reply to schedule.
// Blank text returns domain.ErrEmptyMessage and changes nothing.
func (w *Workshop) SendMessage(text string) (*chat.Pending, error) {
	p, err := w.conv.Send(text)
	if err != nil {
		if errors.Is(err, domain.ErrReplyPending) {
			w.setStatus("%s", chat.LineStillBrewing())
		}
		return nil, err
	}
	return p, nil
}

// DeliverReply lands a scheduled reply.
func (w *Workshop) DeliverReply(token uint64) (*domain.Message, error) {
	return w.conv.Deliver(token)
}

// RunReply waits out the reply delay and delivers it. For callers without
// their own timer. A cancelled ctx leaves the reply pending.
func (w *Workshop) RunReply(ctx context.Context, p *chat.Pending) (*domain.Message, error) {
	t := time.NewTimer(p.Delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.C:
		return w.DeliverReply(p.Token)
	}
}

// AddRecipe brews a random recipe into the grimoire.
func (w *Workshop) AddRecipe(ctx context.Context) (*domain.Recipe, error) {
	r, err := w.recipes.Add(ctx)
	if err != nil {
		return nil, fmt.Errorf("adding recipe: %w", err)
	}
	w.setStatus("%s %s added to the grimoire", r.Icon, r.Name)
	return r, nil
}

// DeleteRecipe removes a recipe. A missing id is a silent no-op.
func (w *Workshop) DeleteRecipe(ctx context.Context, id int64) (bool, error) {
	ok, err := w.recipes.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting recipe: %w", err)
	}
	return ok, nil
}

// DeleteRecipeAt removes the recipe at 1-based position pos in display
// order. Out of range is a silent no-op.
func (w *Workshop) DeleteRecipeAt(ctx context.Context, pos int) (bool, error) {
	list, _, err := w.visibleRecipes(ctx)
	if err != nil {
		return false, err
	}
	if pos < 1 || pos > len(list) {
		return false, nil
	}
	return w.DeleteRecipe(ctx, list[pos-1].ID)
}

// SearchRecipes narrows the grimoire to recipes matching query. An empty
// query shows everything again. A query the store rejects, such as an
// unknown tier in "rarity:<tier>", leaves the current filter in place.
func (w *Workshop) SearchRecipes(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query != "" {
		searcher, ok := w.recipes.(RecipeSearcher)
		if !ok {
			return errors.New("recipe store does not support search")
		}
		if _, err := searcher.Search(ctx, query); err != nil {
			w.setStatus("The grimoire cannot answer %q: %v", query, err)
			return err
		}
	}

	w.mu.Lock()
	w.filter = query
	w.mu.Unlock()

	if query == "" {
		w.setStatus("Showing the whole grimoire")
	} else {
		w.setStatus("Seeking recipes matching %q", query)
	}
	return nil
}

// ToggleGrouping switches the grimoire between insertion order and
// grouped by rarity. Returns the new setting.
func (w *Workshop) ToggleGrouping() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.grouped = !w.grouped
	return w.grouped
}

// visibleRecipes applies the filter and grouping to the store's contents.
func (w *Workshop) visibleRecipes(ctx context.Context) ([]*domain.Recipe, []recipe.RarityGroup, error) {
	w.mu.Lock()
	filter, grouped := w.filter, w.grouped
	w.mu.Unlock()

	var (
		list []*domain.Recipe
		err  error
	)
	if searcher, ok := w.recipes.(RecipeSearcher); ok && filter != "" {
		list, err = searcher.Search(ctx, filter)
	} else {
		list, err = w.recipes.List(ctx)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("listing recipes: %w", err)
	}
	if !grouped {
		return list, nil, nil
	}

	groups := recipe.Group(list)
	flat := make([]*domain.Recipe, 0, len(list))
	for _, g := range groups {
		flat = append(flat, g.Recipes...)
	}
	return flat, groups, nil
}

// TogglePlayPause drives the music. A rejected play is logged, shown on
// the status line and returned; IsPlaying stays as the element reports it.
func (w *Workshop) TogglePlayPause(ctx context.Context) error {
	if err := w.audio.TogglePlayPause(ctx); err != nil {
		w.log.Warn("music: %v", err)
		w.setStatus("The music refuses to play: %v", err)
		return err
	}
	return nil
}

// HandleMediaEvent feeds an element event into the audio state.
func (w *Workshop) HandleMediaEvent(ev domain.MediaEvent) {
	w.audio.HandleEvent(ev)
}

// SetVolume sets the volume, clamped to 0-100.
func (w *Workshop) SetVolume(v int) int {
	return w.audio.SetVolume(v)
}

// StepVolume nudges the volume.
func (w *Workshop) StepVolume(delta int) int {
	return w.audio.Step(delta)
}

// ToggleMute flips the muted flag.
func (w *Workshop) ToggleMute() bool {
	return w.audio.ToggleMute()
}

// SetVolumeFromClickPosition maps a click on the volume bar to a volume.
func (w *Workshop) SetVolumeFromClickPosition(clickX, width float64) (int, bool) {
	return w.audio.SetVolumeFromClickPosition(clickX, width)
}

// SwitchTab shows tab.
func (w *Workshop) SwitchTab(tab domain.Tab) {
	w.nav.SwitchTab(tab)
}

// OpenAbout opens the team modal. Load its media and report back with
// MarkVideoLoaded(gen).
func (w *Workshop) OpenAbout() uint64 {
	return w.nav.OpenAbout()
}

// MarkVideoLoaded reveals the team content if gen is still current.
func (w *Workshop) MarkVideoLoaded(gen uint64) bool {
	return w.nav.MarkVideoLoaded(gen)
}

// CloseAbout closes the team modal.
func (w *Workshop) CloseAbout() {
	w.nav.CloseAbout()
}

// Execute runs a parsed command.
func (w *Workshop) Execute(ctx context.Context, cmd domain.Command) (Result, error) {
	w.log.Debug("execute %s %q", cmd.Type, cmd.Payload)

	var res Result
	switch cmd.Type {
	case domain.CommandNone:
		p, err := w.SendMessage(cmd.Payload)
		res.Reply = p
		return res, err

	case domain.CommandAddRecipe:
		_, err := w.AddRecipe(ctx)
		return res, err

	case domain.CommandDeleteRecipe:
		return res, w.executeDelete(ctx, cmd.Payload)

	case domain.CommandSearchRecipes:
		w.SwitchTab(domain.TabRecipes)
		return res, w.SearchRecipes(ctx, cmd.Payload)

	case domain.CommandGroupRecipes:
		w.SwitchTab(domain.TabRecipes)
		w.ToggleGrouping()

	case domain.CommandPlayPause:
		return res, w.TogglePlayPause(ctx)

	case domain.CommandMute:
		w.ToggleMute()

	case domain.CommandVolume:
		if cmd.Relative {
			w.StepVolume(cmd.Value)
		} else {
			w.SetVolume(cmd.Value)
		}

	case domain.CommandChatTab:
		w.SwitchTab(domain.TabChat)

	case domain.CommandRecipesTab:
		w.SwitchTab(domain.TabRecipes)

	case domain.CommandAbout:
		res.LoadGen = w.OpenAbout()

	case domain.CommandClose:
		w.CloseAbout()

	case domain.CommandHelp:
		w.setStatus("%s", strings.Join(command.Help(), "\n"))

	case domain.CommandQuit:
		res.Quit = true

	default:
		w.setStatus("Unknown incantation %q, try /help", cmd.Payload)
		return res, fmt.Errorf("%q: %w", cmd.Payload, domain.ErrInvalidCommand)
	}
	return res, nil
}

func (w *Workshop) executeDelete(ctx context.Context, arg string) error {
	var (
		ok  bool
		err error
	)
	if pos, found := strings.CutPrefix(arg, "#"); found {
		n, convErr := strconv.Atoi(pos)
		if convErr != nil {
			return fmt.Errorf("%q: %w", arg, domain.ErrInvalidCommand)
		}
		ok, err = w.DeleteRecipeAt(ctx, n)
	} else {
		id, convErr := strconv.ParseInt(arg, 10, 64)
		if convErr != nil {
			return fmt.Errorf("%q: %w", arg, domain.ErrInvalidCommand)
		}
		ok, err = w.DeleteRecipe(ctx, id)
	}
	if err != nil {
		return err
	}
	if ok {
		w.setStatus("Recipe %s vanished from the grimoire", arg)
	}
	return nil
}

// Snapshot copies everything the UI renders.
func (w *Workshop) Snapshot(ctx context.Context) Snapshot {
	recipes, groups, err := w.visibleRecipes(ctx)
	if err != nil {
		w.log.Error("rendering grimoire: %v", err)
	}

	w.mu.Lock()
	input, status := w.input, w.status
	filter, grouped := w.filter, w.grouped
	w.mu.Unlock()

	return Snapshot{
		Messages: w.conv.Messages(),
		Typing:   w.conv.Typing(),
		Recipes:  recipes,
		Groups:   groups,
		Filter:   filter,
		Grouped:  grouped,
		Audio:    w.audio.State(),
		Nav:      w.nav.State(),
		ShowTeam: w.nav.ShowTeam(),
		Input:    input,
		Status:   status,
	}
}

// Close releases the audio element.
func (w *Workshop) Close() error {
	return w.audio.Close()
}
