package tasks

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevTab  key.Binding
	NextTab  key.Binding
	Toggle   key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Search   key.Binding
	Scan     key.Binding
	Detail   key.Binding
	Refresh  key.Binding
	Calendar key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var listKeys = listKeyMap{
	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
	PrevTab: key.NewBinding(key.WithKeys("h", "left", "shift+tab"), key.WithHelp("h/l", "tab")),
	NextTab: key.NewBinding(key.WithKeys("l", "right", "tab")),
	Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Edit:    key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
	Delete:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),
	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Scan:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scan meeting")),
	Detail:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	// Calendar is handled by the app; listed here for help.
	Calendar: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "calendar")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevTab, k.Toggle, k.New, k.Edit, k.Delete, k.Search, k.Scan, k.Detail, k.Help, k.Quit}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevTab},
		{k.Toggle, k.New, k.Edit, k.Delete},
		{k.Search, k.Scan, k.Detail, k.Refresh, k.Calendar},
		{k.Help, k.Quit},
	}
}
