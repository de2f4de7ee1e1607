package api

// Types mirroring the board API's JSON wire format. The server predates this
// client and keeps Spanish keys for the user-story fields (persona, objetivo,
// beneficio); the Go field names stay English, only the tags follow the wire.

// Project is a Scrum project owned by the remote API.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Member is one entry in a project's team roster.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Story is a persisted product-backlog item.
type Story struct {
	ID                 string `json:"id"`
	Title              string `json:"titulo"`
	Persona            string `json:"persona"`
	Objective          string `json:"objetivo"`
	Benefit            string `json:"beneficio"`
	Estimate           int    `json:"estimate"`
	AcceptanceCriteria string `json:"acceptanceCriteria,omitempty"`
	SprintID           string `json:"sprintId,omitempty"`
}

// CreateStoryRequest is the payload for creating a backlog story.
// AcceptanceCriteria is a single newline-delimited string; the caller joins
// list-form criteria before building the request.
type CreateStoryRequest struct {
	Title              string `json:"titulo"`
	Persona            string `json:"persona"`
	Objective          string `json:"objetivo"`
	Benefit            string `json:"beneficio"`
	Estimate           int    `json:"estimate"`
	AcceptanceCriteria string `json:"acceptanceCriteria,omitempty"`
}

// Sprint is a persisted time-boxed container of stories.
type Sprint struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Stories   []string `json:"stories,omitempty"`
	Status    string   `json:"status,omitempty"`
}

// CreateSprintRequest is the payload for creating a sprint.
// Dates are passed through as the server formats them (ISO 8601 date strings).
type CreateSprintRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Task is a persisted unit of implementation work.
type Task struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	AssignedTo  *string `json:"assignedTo"`
	SprintID    string  `json:"sprintId,omitempty"`
	StoryID     string  `json:"storyId,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// CreateTaskRequest is the payload for creating a task. AssignedTo is nil
// when no team member could be resolved; the server accepts unassigned tasks.
type CreateTaskRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	AssignedTo  *string `json:"assignedTo"`
	SprintID    string  `json:"sprintId,omitempty"`
	StoryID     string  `json:"storyId,omitempty"`
}

// assignStoriesRequest attaches story IDs to a sprint.
type assignStoriesRequest struct {
	StoryIDs []string `json:"storyIds"`
}

// loginRequest is the payload for the login endpoint.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the issued bearer token.
type loginResponse struct {
	Token string `json:"token"`
}
