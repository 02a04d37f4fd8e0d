package ui

import (
	"fmt"
	"strings"
	"time"

	"algobench/internal/progress"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProgressPollInterval is how often the dashboard samples the tracker.
const ProgressPollInterval = 100 * time.Millisecond

type progressTickMsg time.Time

// BenchmarkDoneMsg tells the dashboard the harness has returned.
type BenchmarkDoneMsg struct{ Err error }

// ModeStartedMsg names the mode that is about to run.
type ModeStartedMsg struct{ Title string }

// ProgressModel renders a live view of a progress.Tracker.
type ProgressModel struct {
	tracker *progress.Tracker
	keys    progressKeyMap
	help    help.Model
	bar     progressbar.Model

	Title    string
	Snapshot progress.Snapshot
	Done     bool
	Aborted  bool
	Err      error
	width    int
}

func NewProgressModel(tracker *progress.Tracker, title string) ProgressModel {
	return ProgressModel{
		tracker: tracker,
		keys:    progressKeys,
		help:    help.New(),
		bar:     progressbar.New(progressbar.WithDefaultGradient()),
		Title:   title,
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return progressTickCmd()
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = msg.Width - 10
		if m.bar.Width > 80 {
			m.bar.Width = 80
		}
		return m, nil

	case progressTickMsg:
		m.Snapshot = m.tracker.Snapshot()
		return m, progressTickCmd()

	case ModeStartedMsg:
		m.Title = msg.Title
		return m, nil

	case BenchmarkDoneMsg:
		m.Snapshot = m.tracker.Snapshot()
		m.Done = true
		m.Err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("algobench · "+m.Title) + "\n\n")

	snap := m.Snapshot
	row := func(label, value string) {
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value)) + "\n")
	}
	row("Algorithm", orDash(snap.Algorithm))
	row("Case", orDash(snap.Case))
	row("Size", fmt.Sprintf("%d", snap.Size))
	row("Run", fmt.Sprintf("%d / %d", snap.CurrentRun, snap.TotalRuns))
	s.WriteString("\n" + m.bar.ViewAs(snap.Fraction) + "\n\n")

	s.WriteString(mutedStyle.Render("Recent results") + "\n")
	if len(snap.Recent) == 0 {
		s.WriteString(recentStyle.Render(mutedStyle.Render("waiting for the first sample")) + "\n")
	}
	for _, r := range snap.Recent {
		s.WriteString(recentStyle.Render(r) + "\n")
	}

	switch {
	case m.Err != nil:
		s.WriteString("\n" + errorStyle.Render("Error: "+m.Err.Error()) + "\n")
	case m.Done:
		s.WriteString("\n" + successStyle.Render("Benchmark complete") + "\n")
	}

	s.WriteString("\n" + helpStyle.Render(m.help.View(m.keys)))
	return paneStyle.Render(s.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func progressTickCmd() tea.Cmd {
	return tea.Tick(ProgressPollInterval, func(t time.Time) tea.Msg {
		return progressTickMsg(t)
	})
}
