// Package api implements the HTTP client for the remote Scrum board API.
// The client is a thin JSON-over-HTTP layer: all validation and business
// rules live server-side, and every call maps one-to-one onto a REST
// endpoint. Non-2xx responses become *apierr.APIError values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mfigueredo/boardctl/internal/apierr"
	"github.com/mfigueredo/boardctl/internal/logging"
)

// Client is the interface the rest of boardctl programs against. It exists
// so the apply workflow and the commands can be tested against a fake.
type Client interface {
	// Login exchanges credentials for a bearer token. The token is not
	// stored by the client; callers persist it via config.SaveToken and
	// construct authenticated clients with it.
	Login(ctx context.Context, email, password string) (string, error)

	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, projectID string) (*Project, error)
	GetTeam(ctx context.Context, projectID string) ([]Member, error)

	ListStories(ctx context.Context, projectID string) ([]Story, error)
	CreateStory(ctx context.Context, projectID string, req CreateStoryRequest) (*Story, error)

	ListSprints(ctx context.Context, projectID string) ([]Sprint, error)
	CreateSprint(ctx context.Context, projectID string, req CreateSprintRequest) (*Sprint, error)
	AssignStories(ctx context.Context, sprintID string, storyIDs []string) (*Sprint, error)

	CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error)
	ListTasks(ctx context.Context, projectID string) ([]Task, error)
}

// maxErrorBody caps how much of an error response body is carried into the
// returned error.
const maxErrorBody = 512

type boardClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logging.Logger
}

// New creates a Client for the board API at baseURL. An empty token produces
// an anonymous client; most endpoints will answer 401 for it.
func New(baseURL, token string, timeout time.Duration, logger *logging.Logger) (Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &boardClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into out (skipped when out is nil). op names the logical
// operation for error messages and logs.
func (c *boardClient) doJSON(ctx context.Context, op, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("api request", "op", op, "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("api error response", "op", op, "status", resp.StatusCode)
		return apierr.NewAPIError(op, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

func (c *boardClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.doJSON(ctx, "login", http.MethodPost, "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login: server returned empty token")
	}
	return resp.Token, nil
}

func (c *boardClient) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.doJSON(ctx, "list projects", http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *boardClient) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	path := "/projects/" + url.PathEscape(projectID)
	if err := c.doJSON(ctx, "get project", http.MethodGet, path, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *boardClient) GetTeam(ctx context.Context, projectID string) ([]Member, error) {
	var members []Member
	path := "/projects/" + url.PathEscape(projectID) + "/team"
	if err := c.doJSON(ctx, "get team", http.MethodGet, path, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *boardClient) ListStories(ctx context.Context, projectID string) ([]Story, error) {
	var stories []Story
	path := "/projects/" + url.PathEscape(projectID) + "/stories"
	if err := c.doJSON(ctx, "list stories", http.MethodGet, path, nil, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (c *boardClient) CreateStory(ctx context.Context, projectID string, req CreateStoryRequest) (*Story, error) {
	var story Story
	path := "/projects/" + url.PathEscape(projectID) + "/stories"
	if err := c.doJSON(ctx, "create story", http.MethodPost, path, req, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

func (c *boardClient) ListSprints(ctx context.Context, projectID string) ([]Sprint, error) {
	var sprints []Sprint
	path := "/projects/" + url.PathEscape(projectID) + "/sprints"
	if err := c.doJSON(ctx, "list sprints", http.MethodGet, path, nil, &sprints); err != nil {
		return nil, err
	}
	return sprints, nil
}

func (c *boardClient) CreateSprint(ctx context.Context, projectID string, req CreateSprintRequest) (*Sprint, error) {
	var sprint Sprint
	path := "/projects/" + url.PathEscape(projectID) + "/sprints"
	if err := c.doJSON(ctx, "create sprint", http.MethodPost, path, req, &sprint); err != nil {
		return nil, err
	}
	return &sprint, nil
}

// AssignStories attaches the given story IDs to a sprint. The server decides
// whether the IDs replace or extend the sprint's story set; the client does
// not guard against re-assignment.
func (c *boardClient) AssignStories(ctx context.Context, sprintID string, storyIDs []string) (*Sprint, error) {
	var sprint Sprint
	path := "/sprints/" + url.PathEscape(sprintID) + "/stories"
	err := c.doJSON(ctx, "assign stories", http.MethodPost, path, assignStoriesRequest{
		StoryIDs: storyIDs,
	}, &sprint)
	if err != nil {
		return nil, err
	}
	return &sprint, nil
}

func (c *boardClient) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.doJSON(ctx, "create task", http.MethodPost, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *boardClient) ListTasks(ctx context.Context, projectID string) ([]Task, error) {
	var tasks []Task
	path := "/projects/" + url.PathEscape(projectID) + "/tasks"
	if err := c.doJSON(ctx, "list tasks", http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
