// Package apply materializes a generated plan into persisted stories,
// sprints and tasks through the board API.
//
// The workflow is a two-stage sequential saga with no compensation: the
// backlog stage creates one story per product-owner item and records a
// title-to-ID mapping, then the sprint stage resolves or creates sprints,
// assigns matched stories to them, and creates tasks. Every remote call is
// awaited before the next is issued, which keeps the run-scoped caches
// consistent without synchronization at the cost of latency linear in plan
// size. Any remote failure aborts the run and leaves earlier writes in
// place; the caller is told how far the run got via the progress reporter
// and the returned ApplyError.
package apply

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfigueredo/boardctl/internal/api"
	"github.com/mfigueredo/boardctl/internal/apierr"
	"github.com/mfigueredo/boardctl/internal/logging"
	"github.com/mfigueredo/boardctl/internal/plan"
	"github.com/mfigueredo/boardctl/internal/roster"
)

// CreatedStoryRef maps a normalized plan title to the story ID the server
// assigned for it. The plan payload carries no cross-referencing IDs between
// its two sections, so these refs are how the sprint stage finds its stories.
type CreatedStoryRef struct {
	NormalizedTitle string
	ID              string
}

// Result summarizes a completed run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string
	// StoriesCreated is the number of backlog stories persisted.
	StoriesCreated int
	// SprintsCreated counts sprints created by this run; reused sprints are
	// not counted.
	SprintsCreated int
	// TasksCreated is the number of tasks persisted.
	TasksCreated int
	// StoriesAssigned is the number of assign-stories calls issued.
	StoriesAssigned int
	// Skipped lists developer-item titles that matched no created story.
	// Those items produced no sprint assignment and no tasks; the run still
	// completed.
	Skipped []string
}

// Options configures a Runner beyond its collaborators.
type Options struct {
	// TaskNameLimit caps task names; descriptions are truncated to this many
	// characters for the name field. Zero means the server cap of 80.
	TaskNameLimit int
	// OnProgress receives progress updates; nil disables reporting.
	OnProgress ProgressFunc
}

const defaultTaskNameLimit = 80

// Runner executes apply runs against one project. A Runner is stateless
// across runs; all run-scoped state lives in the runContext built per call.
type Runner struct {
	client        api.Client
	roster        *roster.Roster
	logger        *logging.Logger
	taskNameLimit int
	onProgress    ProgressFunc
}

// NewRunner creates a Runner. roster may be empty (all tasks end up
// unassigned) and logger may be nil.
func NewRunner(client api.Client, team *roster.Roster, logger *logging.Logger, opts Options) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}
	if team == nil {
		team = roster.New(nil)
	}
	limit := opts.TaskNameLimit
	if limit <= 0 {
		limit = defaultTaskNameLimit
	}
	return &Runner{
		client:        client,
		roster:        team,
		logger:        logger,
		taskNameLimit: limit,
		onProgress:    opts.OnProgress,
	}
}

// runContext carries the state one run accumulates: explicit, run-scoped,
// and discarded when Run returns. Nothing here survives the call.
type runContext struct {
	projectID string
	stories   []CreatedStoryRef
	sprints   map[string]api.Sprint // keyed by sprint name
	result    *Result
	progress  *tracker
	logger    *logging.Logger
}

// findStory resolves a normalized title against the refs recorded by the
// backlog stage. First match wins when the plan carried duplicate titles.
func (rc *runContext) findStory(normalizedTitle string) (CreatedStoryRef, bool) {
	for _, ref := range rc.stories {
		if ref.NormalizedTitle == normalizedTitle {
			return ref, true
		}
	}
	return CreatedStoryRef{}, false
}

// Run applies the payload to the given project. The payload should have
// passed plan.Validate first; Run re-decodes the sections and fails on
// structurally broken payloads, but it does not repeat the lint-level
// checks.
//
// The two stages run strictly in order and items within a stage run in the
// plan's order, one remote call at a time. ctx cancellation is honored
// between calls; an in-flight HTTP request is also abandoned through the
// request context.
func (r *Runner) Run(ctx context.Context, projectID string, payload *plan.Payload) (*Result, error) {
	backlog, err := payload.Backlog()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierr.ErrPlanInvalid, err)
	}
	devPlan, err := payload.DevPlan()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierr.ErrPlanInvalid, err)
	}

	runID := uuid.NewString()
	rc := &runContext{
		projectID: projectID,
		sprints:   make(map[string]api.Sprint),
		result:    &Result{RunID: runID},
		progress:  newTracker(r.onProgress),
		logger:    r.logger.WithRun(runID).WithProject(projectID),
	}

	rc.logger.Info("apply run starting",
		"backlog_items", len(backlog),
		"developer_items", len(devPlan))

	rc.progress.start(StageBacklog)

	if err := r.materializeBacklog(ctx, rc, backlog); err != nil {
		rc.logger.Error("apply run aborted", "stage", StageBacklog, "error", err.Error())
		return rc.result, err
	}

	rc.progress.enter(StageSprints)

	if err := r.materializeSprints(ctx, rc, devPlan); err != nil {
		rc.logger.Error("apply run aborted", "stage", StageSprints, "error", err.Error())
		return rc.result, err
	}

	rc.progress.finish()
	rc.logger.Info("apply run complete",
		"stories", rc.result.StoriesCreated,
		"sprints", rc.result.SprintsCreated,
		"tasks", rc.result.TasksCreated,
		"skipped", len(rc.result.Skipped))

	return rc.result, nil
}

// materializeBacklog turns each product-owner item into a persisted story,
// in plan order, recording a CreatedStoryRef per success. An empty backlog
// completes immediately with no progress delta.
func (r *Runner) materializeBacklog(ctx context.Context, rc *runContext, items []plan.StoryItem) error {
	if len(items) == 0 {
		return nil
	}

	logger := rc.logger.WithStage(StageBacklog)
	delta := backlogBudget / float64(len(items))

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return apierr.NewApplyError(StageBacklog, item.Title, err)
		}

		story, err := r.client.CreateStory(ctx, rc.projectID, api.CreateStoryRequest{
			Title:              item.Title,
			Persona:            item.Persona,
			Objective:          item.Objective,
			Benefit:            item.Benefit,
			Estimate:           item.Points,
			AcceptanceCriteria: plan.JoinCriteria(item.AcceptanceCriteria),
		})
		if err != nil {
			return apierr.NewApplyError(StageBacklog, item.Title, err)
		}

		rc.stories = append(rc.stories, CreatedStoryRef{
			NormalizedTitle: plan.NormalizeTitle(item.Title),
			ID:              story.ID,
		})
		rc.result.StoriesCreated++

		logger.Info("story created", "title", item.Title, "story_id", story.ID)
		rc.progress.add(delta, fmt.Sprintf("created story %q", item.Title))
	}

	return nil
}

// materializeSprints establishes sprints and tasks from the developer plan.
// Existing sprints are fetched once up front and take precedence over
// creating duplicates; sprints created during the run are cached so items
// sharing a sprint index reuse the same sprint without a second create call.
func (r *Runner) materializeSprints(ctx context.Context, rc *runContext, items []plan.DevItem) error {
	if len(items) == 0 {
		return nil
	}

	logger := rc.logger.WithStage(StageSprints)

	existing, err := r.client.ListSprints(ctx, rc.projectID)
	if err != nil {
		return apierr.NewApplyError(StageSprints, "", err)
	}
	for _, sprint := range existing {
		rc.sprints[sprint.Name] = sprint
	}

	delta := sprintBudget / float64(len(items))

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return apierr.NewApplyError(StageSprints, item.Title, err)
		}

		sprint, err := r.resolveSprint(ctx, rc, item)
		if err != nil {
			return apierr.NewApplyError(StageSprints, item.Title, err)
		}

		ref, ok := rc.findStory(plan.NormalizeTitle(item.Title))
		if !ok {
			// Best-effort reconciliation: an item whose title matches no
			// created story is skipped outright, but the skip is recorded so
			// the caller can report it.
			rc.result.Skipped = append(rc.result.Skipped, item.Title)
			logger.Warn("no created story matches developer item, skipping",
				"title", item.Title, "sprint", sprint.Name)
			rc.progress.add(delta, fmt.Sprintf("skipped %q", item.Title))
			continue
		}

		if _, err := r.client.AssignStories(ctx, sprint.ID, []string{ref.ID}); err != nil {
			return apierr.NewApplyError(StageSprints, item.Title, err)
		}
		rc.result.StoriesAssigned++
		logger.Info("story assigned to sprint",
			"title", item.Title, "story_id", ref.ID, "sprint", sprint.Name)

		for _, sub := range item.Tasks {
			if err := r.createTask(ctx, rc, sprint.ID, ref.ID, sub); err != nil {
				return apierr.NewApplyError(StageSprints, item.Title, err)
			}
		}

		rc.progress.add(delta, fmt.Sprintf("planned %q into %s", item.Title, sprint.Name))
	}

	return nil
}

// resolveSprint returns the sprint for the item's index, creating it when
// neither the server nor the run has seen that name yet.
func (r *Runner) resolveSprint(ctx context.Context, rc *runContext, item plan.DevItem) (api.Sprint, error) {
	name := plan.SprintName(item.Sprint.Index)

	if sprint, ok := rc.sprints[name]; ok {
		return sprint, nil
	}

	created, err := r.client.CreateSprint(ctx, rc.projectID, api.CreateSprintRequest{
		Name:      name,
		StartDate: item.Sprint.StartDate,
		EndDate:   item.Sprint.EndDate,
	})
	if err != nil {
		return api.Sprint{}, err
	}

	rc.sprints[name] = *created
	rc.result.SprintsCreated++
	rc.logger.WithStage(StageSprints).Info("sprint created", "sprint", name, "sprint_id", created.ID)

	return *created, nil
}

// createTask persists one sub-task, resolving the assignee best-effort
// against the roster. No roster match means the task is created unassigned.
func (r *Runner) createTask(ctx context.Context, rc *runContext, sprintID, storyID string, sub plan.SubTask) error {
	var assignee *string
	if member, ok := r.roster.Match(sub.Responsible); ok {
		assignee = &member.ID
	}

	task, err := r.client.CreateTask(ctx, api.CreateTaskRequest{
		Name:        truncate(sub.Description, r.taskNameLimit),
		Description: sub.Description,
		AssignedTo:  assignee,
		SprintID:    sprintID,
		StoryID:     storyID,
	})
	if err != nil {
		return err
	}

	rc.result.TasksCreated++
	rc.logger.WithStage(StageSprints).Info("task created",
		"task_id", task.ID, "assigned", assignee != nil)
	return nil
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
