// Package tui renders the plan-apply workflow as a live terminal view.
//
// It follows The Elm Architecture via bubbletea: the apply run executes in
// its own goroutine and reports through a channel, which the model drains
// one update per tea message so rendering never blocks the workflow.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfigueredo/boardctl/internal/apply"
)

// RunFunc executes the apply run, reporting through onProgress. The TUI owns
// the context so the user can cancel with ctrl+c.
type RunFunc func(ctx context.Context, onProgress apply.ProgressFunc) (*apply.Result, error)

// logTailSize bounds the per-item activity tail kept on screen.
const logTailSize = 6

type progressMsg apply.Progress

type doneMsg struct {
	result *apply.Result
	err    error
}

// ApplyModel drives one apply run. Create it with NewApply and hand it to
// tea.NewProgram; the run starts on Init.
type ApplyModel struct {
	run     RunFunc
	updates chan apply.Progress
	cancel  context.CancelFunc

	spinner  spinner.Model
	bar      progress.Model
	current  apply.Progress
	tail     []string
	result   *apply.Result
	err      error
	canceled bool
	finished bool
	width    int
}

// NewApply builds the model for one run. The run does not start until the
// program calls Init.
func NewApply(run RunFunc) *ApplyModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &ApplyModel{
		run:     run,
		updates: make(chan apply.Progress, 16),
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient()),
		width:   80,
	}
}

// Result returns the run's outcome once the program has finished.
func (m *ApplyModel) Result() (*apply.Result, error) {
	return m.result, m.err
}

// Init starts the spinner, the channel drain, and the run itself.
func (m *ApplyModel) Init() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	return tea.Batch(
		m.spinner.Tick,
		m.waitForUpdate(),
		m.startRun(ctx),
	)
}

// startRun executes the workflow in the command's goroutine. Progress flows
// through the channel; the command itself returns only the final outcome.
func (m *ApplyModel) startRun(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		result, err := m.run(ctx, func(p apply.Progress) {
			m.updates <- p
		})
		close(m.updates)
		return doneMsg{result: result, err: err}
	}
}

// waitForUpdate delivers the next progress update as a message.
func (m *ApplyModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		p, ok := <-m.updates
		if !ok {
			return nil
		}
		return progressMsg(p)
	}
}

func (m *ApplyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.finished {
				return m, tea.Quit
			}
			m.canceled = true
			m.cancel()
			return m, nil
		}
		return m, nil

	case progressMsg:
		m.current = apply.Progress(msg)
		if msg.Message != "" {
			m.tail = append(m.tail, msg.Message)
			if len(m.tail) > logTailSize {
				m.tail = m.tail[len(m.tail)-logTailSize:]
			}
		}
		return m, tea.Batch(
			m.bar.SetPercent(msg.Percent/100),
			m.waitForUpdate(),
		)

	case doneMsg:
		// The channel is closed by now; drain whatever the quit would
		// otherwise drop so the tail and bar reflect the final state.
		for p := range m.updates {
			m.current = p
			if p.Message != "" {
				m.tail = append(m.tail, p.Message)
				if len(m.tail) > logTailSize {
					m.tail = m.tail[len(m.tail)-logTailSize:]
				}
			}
		}
		m.finished = true
		m.result = msg.result
		m.err = msg.err
		m.cancel()
		return m, tea.Sequence(m.bar.SetPercent(m.current.Percent/100), tea.Quit)

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		if b, ok := bar.(progress.Model); ok {
			m.bar = b
		}
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *ApplyModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Applying plan"))
	b.WriteString("\n")

	if !m.finished {
		stage := stageLabel(m.current.Stage)
		if m.canceled {
			stage = "canceling..."
		}
		b.WriteString(fmt.Sprintf("%s %s\n\n", m.spinner.View(), stageStyle.Render(stage)))
	} else {
		b.WriteString("\n")
	}

	b.WriteString("  " + m.bar.View() + "\n\n")

	for _, line := range m.tail {
		b.WriteString("  " + messageStyle.Render(line) + "\n")
	}

	if m.finished {
		b.WriteString(m.summary())
	} else {
		b.WriteString("\n" + messageStyle.Render("  press ctrl+c to cancel") + "\n")
	}

	return b.String()
}

// summary renders the final outcome block shown before the program exits.
func (m *ApplyModel) summary() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(errStyle.Render("  apply failed: " + m.err.Error()))
		b.WriteString("\n")
	}

	if m.result != nil {
		b.WriteString(okStyle.Render(fmt.Sprintf(
			"  %d stories, %d sprints, %d tasks created (%d assignments)",
			m.result.StoriesCreated, m.result.SprintsCreated,
			m.result.TasksCreated, m.result.StoriesAssigned)))
		b.WriteString("\n")
		for _, title := range m.result.Skipped {
			b.WriteString(warnStyle.Render(fmt.Sprintf("  skipped %q: no matching story", title)))
			b.WriteString("\n")
		}
	}

	return summaryStyle.Render(b.String())
}

func stageLabel(stage string) string {
	switch stage {
	case apply.StageBacklog:
		return "creating backlog stories"
	case apply.StageSprints:
		return "planning sprints and tasks"
	default:
		return "starting"
	}
}

// RunApply runs the model to completion on the current terminal and returns
// the run's outcome.
func RunApply(run RunFunc) (*apply.Result, error) {
	model := NewApply(run)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return nil, err
	}
	return model.Result()
}
