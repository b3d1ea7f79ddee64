package monitor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/wifimon/internal/network"
	"github.com/rileyhilliard/wifimon/internal/ui"
)

// Model is the Bubble Tea model for the watch view.
type Model struct {
	collector *Collector
	history   *History
	interval  time.Duration
	timeout   time.Duration
	iface     string

	activity   ui.Activity
	snapshot   *Snapshot
	lastUpdate time.Time

	width       int
	height      int
	quitting    bool
	showHelp    bool
	showPreview bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// snapshotMsg carries a finished collection.
type snapshotMsg struct {
	snapshot Snapshot
	time     time.Time
}

// NewModel creates the watch model. interval is the pause between samples
// and timeout bounds each collection.
func NewModel(collector *Collector, iface string, interval, timeout time.Duration) Model {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	activity := ui.NewActivity("Sampling " + iface)
	activity.Begin()

	return Model{
		collector: collector,
		history:   NewHistory(DefaultHistorySize),
		interval:  interval,
		timeout:   timeout,
		iface:     iface,
		activity:  activity,
	}
}

// Init starts the first collection, which NewModel already marked running.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.activity.Tick(), m.collectCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, m.startCollect()

	case snapshotMsg:
		snap := msg.snapshot
		m.snapshot = &snap
		m.lastUpdate = msg.time
		m.history.Push(float64(snap.Sample.SignalOrSentinel()))
		if blind(snap.Sample) {
			m.activity.Fail(snap.Took, "every query failed")
		} else {
			m.activity.Finish(snap.Took)
		}
		return m, m.tickCmd()

	default:
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the watch screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.render()
}

// Snapshot returns the latest collection, or nil before the first one.
func (m Model) Snapshot() *Snapshot {
	return m.snapshot
}

// startCollect begins a collection unless one is already running.
func (m *Model) startCollect() tea.Cmd {
	if m.activity.Running() {
		return nil
	}
	return tea.Batch(m.activity.Begin(), m.collectCmd())
}

// blind reports whether every fact query failed, leaving nothing sampled.
func blind(s network.Sample) bool {
	for _, fact := range network.Facts {
		if _, failed := s.Faults[fact]; !failed {
			return false
		}
	}
	return true
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// collectCmd samples off the UI goroutine.
func (m Model) collectCmd() tea.Cmd {
	collector, timeout := m.collector, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return snapshotMsg{snapshot: collector.Collect(ctx), time: time.Now()}
	}
}
