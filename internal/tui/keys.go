package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the week browser's bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Today  key.Binding
	Done   key.Binding
	Remove key.Binding
	Clear  key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Prev:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "previous week")),
		Next:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next week")),
		Today:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this week")),
		Done:   key.NewBinding(key.WithKeys("enter", "x"), key.WithHelp("enter/x", "mark done")),
		Remove: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		Clear:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Done, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next, k.Today},
		{k.Done, k.Remove, k.Clear, k.Reload},
		{k.Help, k.Quit},
	}
}
