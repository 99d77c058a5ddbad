package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Tab       key.Binding
	NewBoard  key.Binding
	Rename    key.Binding
	Color     key.Binding
	Favorite  key.Binding
	Delete    key.Binding
	AddColumn key.Binding
	DelColumn key.Binding
	AddCard   key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding
	Enter     key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous column")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	NewBoard:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new board")),
	Rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
	Color:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle color")),
	Favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle favorite")),
	Delete:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete board")),
	AddColumn: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add column")),
	DelColumn: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete column")),
	AddCard:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add card")),
	MoveLeft:  key.NewBinding(key.WithKeys("<", "H"), key.WithHelp("<", "move card left")),
	MoveRight: key.NewBinding(key.WithKeys(">", "L"), key.WithHelp(">", "move card right")),
	Refresh:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
}

// helpKeys is the order of the help screen
var helpKeys = []key.Binding{
	keys.Up, keys.Down, keys.Left, keys.Right, keys.Tab,
	keys.NewBoard, keys.Rename, keys.Color, keys.Favorite, keys.Delete,
	keys.AddColumn, keys.DelColumn, keys.AddCard, keys.MoveLeft, keys.MoveRight,
	keys.Refresh, keys.Help, keys.Quit,
}
