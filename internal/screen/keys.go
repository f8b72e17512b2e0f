package screen

import "github.com/charmbracelet/bubbles/key"

type typingKeys struct {
	Reset key.Binding
	Delay key.Binding
	Blur  key.Binding
}

var typingKeyMap = typingKeys{
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset"),
	),
	Delay: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "edit delay"),
	),
	Blur: key.NewBinding(
		key.WithKeys("enter", "esc", "tab"),
		key.WithHelp("enter", "done"),
	),
}

var homeKeyMap = struct {
	Open key.Binding
	Move key.Binding
}{
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Move: key.NewBinding(
		key.WithKeys("up", "down", "k", "j"),
		key.WithHelp("↑/↓", "move"),
	),
}

var termsKeyMap = struct {
	Scroll key.Binding
}{
	Scroll: key.NewBinding(
		key.WithKeys("up", "down", "pgup", "pgdown"),
		key.WithHelp("↑/↓", "scroll"),
	),
}
