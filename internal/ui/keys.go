package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	Fetch      key.Binding
	Favourite  key.Binding
	ToggleList key.Binding
	Suspend    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Fetch: key.NewBinding(
			key.WithKeys("n", " "),
			key.WithHelp("n", "New joke"),
		),
		Favourite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Favourite"),
		),
		ToggleList: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "Favourites list"),
		),
		Suspend: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "Suspend"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fetch, k.Favourite, k.ToggleList, k.Quit}
}

// FullHelp returns all bindings grouped into columns.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fetch, k.Favourite, k.ToggleList},
		{k.Suspend, k.Help, k.Quit},
	}
}
