package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"algobench/internal/progress"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestProgressModel_TickPollsTracker(t *testing.T) {
	tr := progress.NewTracker()
	m := NewProgressModel(tr, "Sorting Benchmarks")

	tr.Reset(4)
	tr.Begin("Merge Sort", "Average", 3000)
	tr.AddResult("Merge Sort - Average - Size 3000")

	updated, cmd := m.Update(progressTickMsg(time.Now()))
	m = updated.(ProgressModel)
	assert.NotNil(t, cmd, "tick reschedules itself")
	assert.Equal(t, 1, m.Snapshot.CurrentRun)

	view := m.View()
	assert.Contains(t, view, "Sorting Benchmarks")
	assert.Contains(t, view, "Merge Sort")
	assert.Contains(t, view, "Average")
	assert.Contains(t, view, "3000")
	assert.Contains(t, view, "1 / 4")
	assert.Contains(t, view, "Merge Sort - Average - Size 3000")
	assert.Contains(t, view, "25%")
}

func TestProgressModel_EmptyView(t *testing.T) {
	m := NewProgressModel(progress.NewTracker(), "Searching Benchmarks")
	view := m.View()
	assert.Contains(t, view, "waiting for the first sample")
	assert.Contains(t, view, "0 / 0")
}

func TestProgressModel_Done(t *testing.T) {
	tr := progress.NewTracker()
	tr.Reset(1)
	tr.Begin("Binary Search", "Best", 10)
	tr.Finish()

	m := NewProgressModel(tr, "x")
	updated, cmd := m.Update(BenchmarkDoneMsg{})
	m = updated.(ProgressModel)
	assert.True(t, m.Done)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Benchmark complete")

	updated, _ = m.Update(BenchmarkDoneMsg{Err: errors.New("disk full")})
	assert.Contains(t, updated.View(), "disk full")
}

func TestProgressModel_QuitAborts(t *testing.T) {
	m := NewProgressModel(progress.NewTracker(), "x")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, updated.(ProgressModel).Aborted)
	assert.NotNil(t, cmd)
}

func TestProgressModel_ModeStartedAndResize(t *testing.T) {
	m := NewProgressModel(progress.NewTracker(), "Sorting Benchmarks")
	updated, _ := m.Update(ModeStartedMsg{Title: "Searching Benchmarks"})
	updated, _ = updated.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	m = updated.(ProgressModel)

	assert.Equal(t, "Searching Benchmarks", m.Title)
	assert.Equal(t, 80, m.bar.Width)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.True(t, updated.(ProgressModel).help.ShowAll)
}

func TestConfigureColor_NoColor(t *testing.T) {
	defer lipgloss.SetColorProfile(termenv.Ascii)
	t.Setenv("CLICOLOR_FORCE", "0")

	var buf strings.Builder
	ConfigureColor(&buf, true)
	assert.Equal(t, "plain", errorStyle.Render("plain"))

	ConfigureColor(&buf, false)
	assert.Equal(t, "plain", errorStyle.Render("plain"), "a non-terminal writer gets no colour")
}
