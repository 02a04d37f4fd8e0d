package ui

import "github.com/charmbracelet/bubbles/key"

type progressKeyMap struct {
	Help key.Binding
	Quit key.Binding
}

func (k progressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k progressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Help, k.Quit}}
}

var progressKeys = progressKeyMap{
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "abort"),
	),
}

type visualizerKeyMap struct {
	Sorting   key.Binding
	Searching key.Binding
	Curves    key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k visualizerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sorting, k.Searching, k.Curves, k.Quit}
}

func (k visualizerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sorting, k.Searching},
		{k.Curves, k.Reload, k.Help, k.Quit},
	}
}

var visualizerKeys = visualizerKeyMap{
	Sorting: key.NewBinding(
		key.WithKeys("1", "s"),
		key.WithHelp("1/s", "sorting"),
	),
	Searching: key.NewBinding(
		key.WithKeys("2", "f"),
		key.WithHelp("2/f", "searching"),
	),
	Curves: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "all/key curves"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
