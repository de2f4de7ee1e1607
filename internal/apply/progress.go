package apply

// Progress is a snapshot of how far an apply run has advanced, surfaced to
// the presentation layer while the run executes.
type Progress struct {
	// Percent is in [0,100]. It starts at startPercent as soon as the run
	// begins, grows monotonically, and reaches exactly 100 only when both
	// stages complete without error.
	Percent float64
	// Stage is the stage currently executing: StageBacklog or StageSprints.
	Stage string
	// Message describes the most recent completed step, suitable for a
	// one-line status display.
	Message string
}

// ProgressFunc receives progress updates. Updates are delivered from the
// run's single goroutine, strictly in order; implementations that hand them
// to another goroutine (like the TUI) must do their own bridging.
type ProgressFunc func(Progress)

// Stage names reported in Progress and recorded in ApplyError.
const (
	StageBacklog = "backlog"
	StageSprints = "sprints"
)

// Progress budget: a small head start for immediate feedback, then the
// backlog stage owns 40 points and the sprint/task stage 60. The head start
// makes the raw sum overshoot, so per-item increments clamp just under 100
// and the bar is pinned to exactly 100 only when the run completes.
const (
	startPercent  = 5.0
	backlogBudget = 40.0
	sprintBudget  = 60.0
)

// tracker owns the single mutable percentage for one run. All writes happen
// from the run's goroutine, so no locking is needed; monotonicity is still
// enforced to keep the display from jumping backwards on rounding.
type tracker struct {
	percent float64
	stage   string
	report  ProgressFunc
}

func newTracker(report ProgressFunc) *tracker {
	if report == nil {
		report = func(Progress) {}
	}
	return &tracker{report: report}
}

// start resets to the head-start value and announces the first stage.
func (t *tracker) start(stage string) {
	t.percent = startPercent
	t.stage = stage
	t.report(Progress{Percent: t.percent, Stage: stage, Message: "starting"})
}

// enter switches the reported stage without moving the percentage.
func (t *tracker) enter(stage string) {
	t.stage = stage
	t.report(Progress{Percent: t.percent, Stage: stage})
}

// add advances by delta and reports, clamping below 100 so only finish can
// land exactly on it.
func (t *tracker) add(delta float64, message string) {
	t.percent += delta
	if t.percent > 99.0 {
		t.percent = 99.0
	}
	t.report(Progress{Percent: t.percent, Stage: t.stage, Message: message})
}

// finish pins the percentage to 100 after a fully successful run.
func (t *tracker) finish() {
	t.percent = 100
	t.report(Progress{Percent: 100, Stage: t.stage, Message: "done"})
}

// value returns the current percentage.
func (t *tracker) value() float64 {
	return t.percent
}
