// Package tui implements the interactive play screen: a live running
// count with the scoreboard recomputed on every change.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jeepscore/jeepscore/internal/game"
	"github.com/jeepscore/jeepscore/internal/manager"
	"github.com/jeepscore/jeepscore/internal/score"
)

type keyMap struct {
	Inc       key.Binding
	Dec       key.Binding
	End       key.Binding
	Algorithm key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Inc, k.Dec, k.End, k.Algorithm, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Inc, k.Dec, k.End},
		{k.Algorithm, k.Help, k.Quit},
	}
}

var defaultKeys = keyMap{
	Inc: key.NewBinding(
		key.WithKeys("+", "=", "up", "k"),
		key.WithHelp("+/↑", "count up"),
	),
	Dec: key.NewBinding(
		key.WithKeys("-", "_", "down", "j"),
		key.WithHelp("-/↓", "count down"),
	),
	End: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "end game"),
	),
	Algorithm: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "switch scoring"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the Bubble Tea model for the play screen. All mutations go
// through the manager so every keypress is persisted before the next
// frame renders.
type Model struct {
	manager *manager.Manager
	game    *game.Game
	logger  *log.Logger

	keys keyMap
	help help.Model

	width    int
	err      error
	flash    string
	quitting bool
}

// New creates a play-screen model for the manager's current game.
func New(m *manager.Manager, logger *log.Logger) Model {
	return Model{
		manager: m,
		game:    m.CurrentGame(),
		logger:  logger.WithPrefix("tui"),
		keys:    defaultKeys,
		help:    help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		m.flash = ""

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Inc):
			_, err := m.manager.IncCount()
			m.err = filterEnded(err)
			return m, nil

		case key.Matches(msg, m.keys.Dec):
			_, err := m.manager.DecCount()
			m.err = filterEnded(err)
			return m, nil

		case key.Matches(msg, m.keys.Algorithm):
			next := game.AlgorithmPriceIsRight
			if m.game.Algorithm() == game.AlgorithmPriceIsRight {
				next = game.AlgorithmSpreadSplit
			}
			if m.manager.CurrentGame() != nil {
				if err := m.manager.SetAlgorithm(next); err != nil {
					m.err = err
					return m, nil
				}
			} else {
				// Ended game: switch the view only.
				m.game.SetAlgorithm(next)
			}
			m.flash = fmt.Sprintf("scoring: %s", next)
			return m, nil

		case key.Matches(msg, m.keys.End):
			if err := m.manager.EndGame(); err != nil {
				m.err = filterEnded(err)
				return m, nil
			}
			m.flash = "game ended"
			m.logger.Info("game ended from play screen", "id", m.game.ID())
			return m, nil
		}
	}
	return m, nil
}

// filterEnded drops the not-found error raised once the game has ended
// and the manager no longer has a current game; the screen stays up to
// show the final board and the keypress just does nothing.
func filterEnded(err error) error {
	if errors.Is(err, manager.ErrNotFound) {
		return nil
	}
	return err
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	g := m.game

	title := g.Name()
	if title == "" {
		title = "jeep"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("%s · %s · %s",
		g.State(), g.Algorithm(), game.FormatElapsed(g.Elapsed(), "hms0"))))
	b.WriteString("\n\n")

	b.WriteString(countStyle.Render(fmt.Sprintf("count %d", g.Count())))
	b.WriteString("\n\n")

	b.WriteString(RenderBoard(score.Compute(g)))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.flash != "":
		b.WriteString(flashStyle.Render(m.flash))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run blocks on the interactive play screen for the manager's current
// game.
func Run(m *manager.Manager, logger *log.Logger) error {
	if m.CurrentGame() == nil {
		return fmt.Errorf("%w: nothing to play", manager.ErrNotFound)
	}
	p := tea.NewProgram(New(m, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
