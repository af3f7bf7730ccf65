package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Views
	Films      key.Binding
	ForYou     key.Binding
	BlendMode  key.Binding
	Favorites  key.Binding
	Watchlists key.Binding

	// Actions
	Quit         key.Binding
	Help         key.Binding
	Escape       key.Binding
	Search       key.Binding
	Filter       key.Binding
	Sort         key.Binding
	ResetFilters key.Binding
	Favorite     key.Binding
	Watchlist    key.Binding
	Like         key.Binding
	Report       key.Binding
	Review       key.Binding
	OpenPoster   key.Binding
	CopyAddress  key.Binding
	Undo         key.Binding
	Login        key.Binding
	Logout       key.Binding
	Refresh      key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("h", "left", "backspace"),
			key.WithHelp("h/←", "back"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),

		Films: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "films"),
		),
		ForYou: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "for you"),
		),
		BlendMode: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "blend"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "favorites"),
		),
		Watchlists: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "watchlists"),
		),

		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filters"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "reset filters"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "favorite"),
		),
		Watchlist: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "watchlist"),
		),
		Like: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "like review"),
		),
		Report: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "report review"),
		),
		Review: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "write review"),
		),
		OpenPoster: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open poster"),
		),
		CopyAddress: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy view address"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log in"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "log out"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
	}
}
