// Package ui renders the joke screen and the favourites list. It is a thin
// subscriber over the session and favourites store: every mutation happens
// in Update, fetches run as commands and deliver their result back into the
// event loop.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"jokebox/internal/favourites"
	"jokebox/internal/lifecycle"
	"jokebox/internal/session"
)

// Options configure the UI runtime.
type Options struct {
	Context   context.Context
	Session   *session.Session
	Store     *favourites.Store
	Lifecycle *lifecycle.Observer
}

// Run blocks until the user quits or the context is cancelled.
func Run(opts Options) error {
	if opts.Session == nil || opts.Store == nil {
		return fmt.Errorf("ui requires a session and a favourites store")
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	m := newModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	return err
}

type fetchDoneMsg struct {
	err error
}

type model struct {
	opts     Options
	keys     keyMap
	help     help.Model
	width    int
	height   int
	showList bool
	fetching bool
	errNote  string
}

func newModel(opts Options) model {
	return model{
		opts: opts,
		keys: DefaultKeyMap(),
		help: help.New(),
	}
}

func (m model) Init() tea.Cmd {
	return m.fetchCmd()
}

// fetchCmd runs the network fetch off the event loop. Repeated presses
// spawn independent fetches; whichever finishes last determines the
// displayed joke.
func (m model) fetchCmd() tea.Cmd {
	sess := m.opts.Session
	ctx := m.opts.Context
	return func() tea.Msg {
		return fetchDoneMsg{err: sess.Refresh(ctx)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case fetchDoneMsg:
		m.fetching = false
		if msg.err != nil {
			m.errNote = "Couldn't fetch a new joke. Showing the last one."
		} else {
			m.errNote = ""
		}
		return m, nil

	case tea.ResumeMsg:
		if m.opts.Lifecycle != nil {
			m.opts.Lifecycle.Notify(lifecycle.PhaseActive)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Fetch):
			m.fetching = true
			return m, m.fetchCmd()

		case key.Matches(msg, m.keys.Favourite):
			m.opts.Session.MarkFavourite()
			return m, nil

		case key.Matches(msg, m.keys.ToggleList):
			m.showList = !m.showList
			return m, nil

		case key.Matches(msg, m.keys.Suspend):
			if m.opts.Lifecycle != nil {
				m.opts.Lifecycle.Notify(lifecycle.PhaseBackground)
			}
			return m, tea.Suspend

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m, nil
}
