package wheel

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the wheel reacts to. Bindings are enabled and
// disabled per view so the help line only lists what works right now.
type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Toggle    key.Binding
	Advance   key.Binding
	Back      key.Binding
	NotSure   key.Binding
	Share     key.Binding
	Download  key.Binding
	StartOver key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "up", "shift+tab"),
			key.WithHelp("←/↑", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "down", "tab"),
			key.WithHelp("→/↓", "next"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "select"),
		),
		Advance: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "b", "esc"),
			key.WithHelp("b", "back"),
		),
		NotSure: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "not sure?"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "save card"),
		),
		StartOver: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "start over"),
		),
		Help: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Advance, k.Back, k.NotSure, k.Share, k.Download, k.StartOver, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Toggle},
		{k.Advance, k.Back, k.NotSure},
		{k.Share, k.Download, k.StartOver},
		{k.Help, k.Quit},
	}
}
