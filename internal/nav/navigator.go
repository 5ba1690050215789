// Package nav tracks which tab is showing and the about-the-team modal.
package nav

import (
	"sync"

	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/logger"
)

// Navigator owns the navigation state. The modal's intro media loads
// asynchronously, so each open hands out a generation and only a load
// signal carrying the current generation reveals the team content.
type Navigator struct {
	mu    sync.Mutex
	state domain.NavState
	gen   uint64
	log   *logger.Logger
}

// New starts on the chat tab with the modal closed.
func New(log *logger.Logger) *Navigator {
	return &Navigator{state: domain.NavState{ActiveTab: domain.TabChat}, log: log}
}

// State returns a copy of the navigation state.
func (n *Navigator) State() domain.NavState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// SwitchTab shows tab. Nothing else changes.
func (n *Navigator) SwitchTab(tab domain.Tab) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state.ActiveTab != tab {
		n.log.Debug("tab %s -> %s", n.state.ActiveTab, tab)
	}
	n.state.ActiveTab = tab
}

// OpenAbout opens the modal with its media not yet loaded and returns the
// generation the eventual load signal must carry.
func (n *Navigator) OpenAbout() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	n.state.AboutOpen = true
	n.state.VideoLoaded = false
	n.log.Debug("about opened (gen %d)", n.gen)
	return n.gen
}

// MarkVideoLoaded records that the media for generation gen finished
// loading. Ignored, returning false, if the modal was closed or reopened
// since.
func (n *Navigator) MarkVideoLoaded(gen uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.state.AboutOpen || gen != n.gen {
		n.log.Debug("stale media load ignored (gen %d, current %d)", gen, n.gen)
		return false
	}
	n.state.VideoLoaded = true
	return true
}

// CloseAbout closes the modal and forgets the loaded flag.
func (n *Navigator) CloseAbout() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state.AboutOpen = false
	n.state.VideoLoaded = false
}

// ShowTeam reports whether the team content may be rendered.
func (n *Navigator) ShowTeam() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state.AboutOpen && n.state.VideoLoaded
}
