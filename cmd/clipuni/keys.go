package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/clipuni/pipeline"
)

type keyMap struct {
	Copy      key.Binding
	Cut       key.Binding
	Paste     key.Binding
	SelectAll key.Binding
	NextCP    key.Binding
	ChooseCP  key.Binding
	About     key.Binding
	Quit      key.Binding
	Dismiss   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Copy: key.NewBinding(
			key.WithKeys("ctrl+insert", "ctrl+c"),
			key.WithHelp("ctrl+c", "copy"),
		),
		Cut: key.NewBinding(
			key.WithKeys("shift+delete", "ctrl+x"),
			key.WithHelp("ctrl+x", "cut"),
		),
		Paste: key.NewBinding(
			key.WithKeys("shift+insert", "ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all"),
		),
		NextCP: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "next codepage"),
		),
		ChooseCP: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("f3", "set codepage"),
		),
		About: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "about"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "dismiss"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Cut, k.Paste, k.NextCP, k.About, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Copy, k.Cut, k.Paste, k.SelectAll},
		{k.NextCP, k.ChooseCP, k.About, k.Quit},
	}
}

// action decodes a key chord into a clipboard action.
func (k keyMap) action(msg tea.KeyMsg) pipeline.Action {
	switch {
	case key.Matches(msg, k.Copy):
		return pipeline.ActionCopy
	case key.Matches(msg, k.Cut):
		return pipeline.ActionCut
	case key.Matches(msg, k.Paste):
		return pipeline.ActionPaste
	default:
		return pipeline.ActionNone
	}
}
