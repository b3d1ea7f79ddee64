package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ActivityFrames animate a running Activity, starting from SymbolProgress.
var ActivityFrames = spinner.Spinner{
	Frames: []string{SymbolProgress, "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// ActivityState is how the last run of an Activity went.
type ActivityState int

const (
	ActivityIdle ActivityState = iota
	ActivityRunning
	ActivityDone
	ActivityFailed
)

// Activity is one repeating background job shown in a Bubble Tea view,
// like the watch view's sampling. It animates while running and then
// keeps how long the last run took and why it failed, if it did.
type Activity struct {
	spin    spinner.Model
	Label   string
	State   ActivityState
	Reason  string
	started time.Time
	took    time.Duration
}

// NewActivity creates an idle activity.
func NewActivity(label string) Activity {
	sp := spinner.New()
	sp.Spinner = ActivityFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)
	return Activity{spin: sp, Label: label}
}

// Begin marks a new run. The returned command drives the animation.
func (a *Activity) Begin() tea.Cmd {
	a.State = ActivityRunning
	a.Reason = ""
	a.started = time.Now()
	return a.spin.Tick
}

// Tick is the animation command for a run already marked by Begin.
func (a Activity) Tick() tea.Cmd {
	return a.spin.Tick
}

// Finish records a successful run that took took.
func (a *Activity) Finish(took time.Duration) {
	a.State = ActivityDone
	a.took = took
}

// Fail records a run that produced nothing usable.
func (a *Activity) Fail(took time.Duration, reason string) {
	a.State = ActivityFailed
	a.Reason = reason
	a.took = took
}

// Running reports whether a run is in flight.
func (a Activity) Running() bool {
	return a.State == ActivityRunning
}

// Took is the duration of the last finished run.
func (a Activity) Took() time.Duration {
	return a.took
}

// Update advances the animation. Ticks arriving between runs are dropped,
// which stops the tick chain until the next Begin.
func (a Activity) Update(msg tea.Msg) (Activity, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !a.Running() {
		return a, nil
	}
	var cmd tea.Cmd
	a.spin, cmd = a.spin.Update(tick)
	return a, cmd
}

// View renders one line: the animation while running, otherwise a status
// symbol with the label and timing.
func (a Activity) View() string {
	switch a.State {
	case ActivityRunning:
		return a.spin.View() + " " + a.Label + "..."
	case ActivityDone:
		return SuccessStyle().Render(SymbolComplete) + " " + a.Label + " " +
			MutedStyle().Render(formatDuration(a.took))
	case ActivityFailed:
		return ErrorStyle().Render(SymbolFail) + " " + a.Label + ": " + a.Reason + " " +
			MutedStyle().Render(formatDuration(a.took))
	default:
		return MutedStyle().Render(SymbolPending) + " " + a.Label
	}
}

// formatDuration renders elapsed time the way status lines show it: 0.4s, 12s, 3m05s.
func formatDuration(d time.Duration) string {
	switch {
	case d < 10*time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	default:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}
