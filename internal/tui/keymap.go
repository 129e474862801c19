package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	PrevSection key.Binding
	NextSection key.Binding
	NextFilter  key.Binding
	FilterAll   key.Binding
	SortNewest  key.Binding
	SortOldest  key.Binding
	ToggleSaved key.Binding
	ToggleTheme key.Binding
	Degrade     key.Binding
	Details     key.Binding
	Back        key.Binding
	Open        key.Binding
	Copy        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "move up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "move down")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdown", "page down")),
		PrevSection: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous section")),
		NextSection: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next section")),
		NextFilter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next category filter")),
		FilterAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "show all categories")),
		SortNewest:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "sort newest first")),
		SortOldest:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "sort oldest first")),
		ToggleSaved: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save for later")),
		ToggleTheme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
		Degrade:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "next thumbnail quality")),
		Details:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details / fold section")),
		Back:        key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Open:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open watch link")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy watch link")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// HelpGroups lists bindings in the order the help overlay shows them.
func (k KeyMap) HelpGroups() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown, k.PrevSection, k.NextSection},
		{k.NextFilter, k.FilterAll, k.SortNewest, k.SortOldest},
		{k.ToggleSaved, k.ToggleTheme, k.Degrade, k.Details, k.Back, k.Open, k.Copy},
		{k.Help, k.Quit},
	}
}
