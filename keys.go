package main

import "github.com/charmbracelet/bubbles/key"

// ---------------------------------------------------------------------------
// Key bindings
// ---------------------------------------------------------------------------

type keyMap struct {
	Shuffle   key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Left      key.Binding
	Right     key.Binding
	Sticky    key.Binding
	Add       key.Binding
	Delete    key.Binding
	Rename    key.Binding
	Toggle    key.Binding
	UpDown    key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Close     key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Shuffle:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		MoveLeft:  key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "move card left")),
		MoveRight: key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "move card right")),
		Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "select")),
		Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("", "")),
		Sticky:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "pin/unpin")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add card")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete card")),
		Rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Toggle:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
		UpDown:    key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("j/k", "navigate")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) wallBindings() []key.Binding {
	return []key.Binding{k.Shuffle, k.Left, k.MoveLeft, k.Sticky, k.Add, k.Delete, k.Rename, k.NextTab, k.Quit}
}

func (k keyMap) historyBindings() []key.Binding {
	return []key.Binding{k.UpDown, k.NextTab, k.Quit}
}

func (k keyMap) settingsBindings() []key.Binding {
	return []key.Binding{k.UpDown, k.Toggle, k.NextTab, k.Quit}
}

func (k keyMap) renameBindings() []key.Binding {
	return []key.Binding{k.Toggle, k.Close}
}
