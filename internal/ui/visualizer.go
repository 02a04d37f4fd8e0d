package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"algobench/internal/harness"
	"algobench/internal/plot"
	"algobench/internal/report"
	"algobench/internal/trace"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// NoDataMessage is shown when the selected trace has no records.
const NoDataMessage = "No performance data available. Please run benchmarks first."

// VisualizerTick is the redraw and stat cadence.
const VisualizerTick = time.Second

// keyCurves are the reference curves that matter for each mode.
var keyCurves = map[harness.Mode][]string{
	harness.Sorting:   {"O(n log n)", "O(n²)"},
	harness.Searching: {"O(1)", "O(log n)"},
}

type traceLoadedMsg struct {
	mode      harness.Mode
	events    []trace.Event
	truncated bool
	modTime   time.Time
	err       error
}

type traceChangedMsg struct{ Event fsnotify.Event }
type watchErrorMsg struct{ Err error }
type visualizerTickMsg time.Time

type traceState struct {
	path      string
	events    []trace.Event
	truncated bool
	modTime   time.Time
	err       error
	loaded    bool
}

// VisualizerModel plots one mode's trace at a time, reloading the file when
// it changes on disk.
type VisualizerModel struct {
	watcher *fsnotify.Watcher
	keys    visualizerKeyMap
	help    help.Model

	Mode      harness.Mode
	AllCurves bool
	traces    map[harness.Mode]*traceState
	WatchErr  error
	Width     int
	Height    int
}

// NewVisualizerModel watches the directories of both trace files. Files that
// do not exist yet are picked up when they are created.
func NewVisualizerModel(sortingPath, searchingPath string, start harness.Mode) (VisualizerModel, error) {
	m := VisualizerModel{
		keys:      visualizerKeys,
		help:      help.New(),
		Mode:      start,
		AllCurves: true,
		traces: map[harness.Mode]*traceState{
			harness.Sorting:   {path: sortingPath},
			harness.Searching: {path: searchingPath},
		},
		Width:  80,
		Height: 24,
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return m, err
	}
	seen := map[string]bool{}
	for _, p := range []string{sortingPath, searchingPath} {
		dir := filepath.Dir(p)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return m, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	m.watcher = watcher
	return m, nil
}

// Close stops the file watcher.
func (m VisualizerModel) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

func (m VisualizerModel) Init() tea.Cmd {
	cmds := []tea.Cmd{visualizerTickCmd()}
	for _, mode := range harness.Modes {
		cmds = append(cmds, loadTraceCmd(mode, m.traces[mode].path))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForTraceChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m VisualizerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Sorting):
			m.Mode = harness.Sorting
		case key.Matches(msg, m.keys.Searching):
			m.Mode = harness.Searching
		case key.Matches(msg, m.keys.Curves):
			m.AllCurves = !m.AllCurves
		case key.Matches(msg, m.keys.Reload):
			return m, loadTraceCmd(m.Mode, m.traces[m.Mode].path)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case traceLoadedMsg:
		st := m.traces[msg.mode]
		if st == nil {
			return m, nil
		}
		st.loaded = true
		st.modTime = msg.modTime
		st.err = msg.err
		if msg.err == nil {
			st.events = msg.events
			st.truncated = msg.truncated
		} else {
			st.events = nil
			st.truncated = false
		}
		return m, nil

	case traceChangedMsg:
		var cmd tea.Cmd
		if msg.Event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
			if mode, ok := m.modeFor(msg.Event.Name); ok {
				cmd = loadTraceCmd(mode, m.traces[mode].path)
			}
		}
		return m, tea.Batch(cmd, waitForTraceChange(m.watcher))

	case watchErrorMsg:
		m.WatchErr = msg.Err
		return m, waitForTraceChange(m.watcher)

	case visualizerTickMsg:
		// Stat as a fallback for filesystems where events are not delivered.
		cmds := []tea.Cmd{visualizerTickCmd()}
		for _, mode := range harness.Modes {
			st := m.traces[mode]
			if info, err := os.Stat(st.path); err == nil && st.loaded && !info.ModTime().Equal(st.modTime) {
				cmds = append(cmds, loadTraceCmd(mode, st.path))
			}
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m VisualizerModel) modeFor(name string) (harness.Mode, bool) {
	clean := filepath.Clean(name)
	for _, mode := range harness.Modes {
		if filepath.Clean(m.traces[mode].path) == clean {
			return mode, true
		}
	}
	return "", false
}

// Events returns the loaded events for mode.
func (m VisualizerModel) Events(mode harness.Mode) []trace.Event {
	if st := m.traces[mode]; st != nil {
		return st.events
	}
	return nil
}

func (m VisualizerModel) curves() []plot.Asymptote {
	if m.AllCurves {
		return plot.Asymptotes()
	}
	var out []plot.Asymptote
	for _, name := range keyCurves[m.Mode] {
		if a, ok := plot.Lookup(name); ok {
			out = append(out, a)
		}
	}
	return out
}

func (m VisualizerModel) View() string {
	st := m.traces[m.Mode]
	var s strings.Builder

	s.WriteString(headerStyle.Render(m.Mode.SessionName()) + " " + mutedStyle.Render(st.path))
	if st.truncated {
		s.WriteString(" " + errorStyle.Render("(incomplete)"))
	}
	s.WriteString("\n")

	switch {
	case !st.loaded:
		s.WriteString(mutedStyle.Render("Loading...") + "\n")
	case st.err != nil && !errors.Is(st.err, os.ErrNotExist):
		s.WriteString(errorStyle.Render("Failed to load trace: "+st.err.Error()) + "\n")
	case len(st.events) == 0:
		s.WriteString(NoDataMessage + "\n")
	default:
		s.WriteString(m.chartView(st.events) + "\n")
		s.WriteString(m.legendView(st.events) + "\n")
	}

	if m.WatchErr != nil {
		s.WriteString(errorStyle.Render("Watcher: "+m.WatchErr.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}

func (m VisualizerModel) chartView(events []trace.Event) string {
	// Header, legend and help take roughly six rows.
	height := m.Height - 6
	if height < 4 {
		height = 4
	}
	width := m.Width
	if width < 10 {
		width = 10
	}
	return plot.Chart(plot.Points(events), width, height, m.curves()).Render(layerStyle)
}

func (m VisualizerModel) legendView(events []trace.Event) string {
	summary := report.Summarize("", events)
	peak := plot.MaxDuration(plot.Points(events))

	var algorithms []string
	seen := map[string]bool{}
	for _, series := range summary.Series {
		if !seen[series.Algorithm] {
			seen[series.Algorithm] = true
			algorithms = append(algorithms, series.Algorithm)
		}
	}

	parts := []string{fmt.Sprintf("%s %s", pointStyle.Render(string(plot.PointMark)), strings.Join(algorithms, ", "))}
	for _, a := range m.curves() {
		parts = append(parts, curveStyle.Render(string(a.Mark))+" "+a.Name)
	}
	return fmt.Sprintf("%d samples, max %dµs  %s", len(events), peak, strings.Join(parts, "  "))
}

func loadTraceCmd(mode harness.Mode, path string) tea.Cmd {
	return func() tea.Msg {
		msg := traceLoadedMsg{mode: mode}
		if info, err := os.Stat(path); err == nil {
			msg.modTime = info.ModTime()
		}
		traces, err := report.LoadTraces(context.Background(), path)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.events = traces[0].Events
		msg.truncated = traces[0].Truncated
		return msg
	}
}

func waitForTraceChange(watcher *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			return traceChangedMsg{Event: event}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErrorMsg{Err: err}
		}
	}
}

func visualizerTickCmd() tea.Cmd {
	return tea.Tick(VisualizerTick, func(t time.Time) tea.Msg {
		return visualizerTickMsg(t)
	})
}
