package display

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/hammamikhairi/alchemy/internal/domain"
)

// volumeStep is how far one keypress moves the volume.
const volumeStep = 5

type keyMap struct {
	PlayPause key.Binding
	Mute      key.Binding
	VolUp     key.Binding
	VolDown   key.Binding
	SwitchTab key.Binding
	About     key.Binding
	Close     key.Binding
	Add       key.Binding
	Quit      key.Binding

	// Chat tab.
	Send     key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding

	// Grimoire tab.
	Up        key.Binding
	Down      key.Binding
	Delete    key.Binding
	GridVolUp key.Binding
	GridVolDn key.Binding
	Group     key.Binding
	Help      key.Binding

	tab domain.Tab
}

func defaultKeyMap() keyMap {
	return keyMap{
		PlayPause: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "play/pause")),
		Mute:      key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "mute")),
		VolUp:     key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("alt+↑", "vol+")),
		VolDown:   key.NewBinding(key.WithKeys("alt+down"), key.WithHelp("alt+↓", "vol-")),
		SwitchTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
		About:     key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "about")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Add:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new recipe")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		Send:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		ScrollUp: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDn: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),

		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		GridVolUp: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "vol+")),
		GridVolDn: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "vol-")),
		Group:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "group by rarity")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	if k.tab == domain.TabRecipes {
		return []key.Binding{k.Up, k.Down, k.Delete, k.Add, k.SwitchTab, k.PlayPause, k.Help, k.Quit}
	}
	return []key.Binding{k.Send, k.SwitchTab, k.PlayPause, k.Mute, k.About, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Delete, k.Add, k.Group},
		{k.PlayPause, k.Mute, k.GridVolUp, k.GridVolDn, k.VolUp, k.VolDown},
		{k.SwitchTab, k.About, k.Close, k.Help, k.Quit},
	}
}
