// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Tools.
	SelectTool key.Binding
	DrawTool   key.Binding
	NextType   key.Binding

	// View.
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ResetZoom key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	FitPage   key.Binding
	FitWidth  key.Binding

	// Pages.
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	GoToPage  key.Binding

	// Editing.
	Undo     key.Binding
	Redo     key.Binding
	Delete   key.Binding
	ClearAll key.Binding

	// Hierarchy.
	Isolate     key.Binding
	ExitIsolate key.Binding
	Tree        key.Binding
	Toggle      key.Binding
	Hide        key.Binding

	// Lists.
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Confirmation prompts.
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:        bind("quit", "q", "ctrl+c"),
		Help:        bind("help", "?"),
		Back:        bind("back", "esc"),
		SelectTool:  bind("select tool", "s"),
		DrawTool:    bind("draw tool", "b"),
		NextType:    bind("next type", "tab"),
		ZoomIn:      bind("zoom in", "+", "="),
		ZoomOut:     bind("zoom out", "-"),
		ResetZoom:   bind("reset zoom", "0"),
		RotateCW:    bind("rotate", "r"),
		RotateCCW:   bind("rotate back", "R"),
		FitPage:     bind("fit page", "f"),
		FitWidth:    bind("fit width", "w"),
		NextPage:    bind("next page", "n", "pgdown"),
		PrevPage:    bind("prev page", "p", "pgup"),
		FirstPage:   bind("first page", "g", "home"),
		LastPage:    bind("last page", "G", "end"),
		GoToPage:    bind("go to page", ":"),
		Undo:        bind("undo", "u", "ctrl+z"),
		Redo:        bind("redo", "ctrl+r", "ctrl+y"),
		Delete:      bind("delete", "d", "delete"),
		ClearAll:    bind("clear all", "x"),
		Isolate:     bind("isolate", "i"),
		ExitIsolate: bind("exit isolation", "I"),
		Tree:        bind("tree", "t"),
		Toggle:      bind("toggle", " "),
		Hide:        bind("hide", "h"),
		Up:          bind("up", "up", "k"),
		Down:        bind("down", "down", "j"),
		Select:      bind("select", "enter"),
		Confirm:     bind("yes", "y", "Y"),
		Deny:        bind("no", "n", "N", "esc"),
	}
}

// bind builds a binding whose help key is its first key.
func bind(desc string, keys ...string) key.Binding {
	helpKey := keys[0]
	if helpKey == " " {
		helpKey = "space"
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, desc),
	)
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.DrawTool, k.Tree, k.Help, k.Quit}
}

// TreeHelp returns keybindings for the tree view.
func (k *KeyMap) TreeHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Select, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SelectTool, k.DrawTool, k.NextType},
		{k.ZoomIn, k.ZoomOut, k.ResetZoom, k.FitPage, k.FitWidth},
		{k.RotateCW, k.RotateCCW},
		{k.NextPage, k.PrevPage, k.FirstPage, k.LastPage, k.GoToPage},
		{k.Undo, k.Redo, k.Delete, k.ClearAll, k.Hide},
		{k.Isolate, k.ExitIsolate, k.Tree},
		{k.Help, k.Back, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
