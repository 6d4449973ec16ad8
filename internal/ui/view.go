package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	jokeStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	markerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
)

const fallbackWidth = 72

func (m model) View() string {
	width := m.width
	if width <= 0 {
		width = fallbackWidth
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("jokebox"))
	b.WriteString("\n\n")

	if m.showList {
		b.WriteString(m.favouritesView(width))
	} else {
		b.WriteString(m.jokeView(width))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) jokeView(width int) string {
	joke, ok := m.opts.Session.Current()
	if !ok {
		if m.fetching {
			return noteStyle.Render("Fetching a joke...")
		}
		return noteStyle.Render("No joke yet. Press n to fetch one.")
	}

	inner := width - 8
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	b.WriteString(jokeStyle.Render(wordWrap(joke.Text, inner)))
	b.WriteString("\n\n")

	switch {
	case m.opts.Session.Added():
		b.WriteString(markerStyle.Render("♥ In favourites"))
	case m.opts.Store.Contains(joke):
		b.WriteString(markerStyle.Render("♥ Saved from an earlier fetch"))
	default:
		b.WriteString(noteStyle.Render("Press f to favourite"))
	}

	if m.fetching {
		b.WriteString("\n")
		b.WriteString(noteStyle.Render("Fetching..."))
	}
	if m.errNote != "" {
		b.WriteString("\n")
		b.WriteString(noteStyle.Render(m.errNote))
	}
	return b.String()
}

func (m model) favouritesView(width int) string {
	jokes := m.opts.Store.All()

	var b strings.Builder
	b.WriteString(listHeaderStyle.Render("Favourites"))
	b.WriteString("\n\n")

	if len(jokes) == 0 {
		b.WriteString(noteStyle.Render("Nothing saved yet."))
		return b.String()
	}

	inner := width - 8
	if inner < 20 {
		inner = 20
	}

	for i, joke := range jokes {
		prefix := ordinal(i, len(jokes)) + " "
		wrapped := wordWrap(joke.Text, inner-len(prefix))
		indent := strings.Repeat(" ", len(prefix))
		wrapped = strings.ReplaceAll(wrapped, "\n", "\n"+indent)
		b.WriteString(prefix + wrapped + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
