package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the board key bindings
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Complete key.Binding
	Tab      key.Binding
	Back     key.Binding
	New      key.Binding
	Delete   key.Binding
	ClearAll key.Binding
	ClearJar key.Binding
	Color    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		Complete: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "done"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear notes"),
		),
		ClearJar: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "empty jar"),
		),
		Color: key.NewBinding(
			key.WithKeys("left", "right", " "),
			key.WithHelp("←/→", "color"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PresetIndex maps the digit keys 1-5 to a preset index
func PresetIndex(k string) (int, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '5' {
		return 0, false
	}
	return int(k[0] - '1'), true
}
