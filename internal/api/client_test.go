package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mfigueredo/boardctl/internal/apierr"
	"github.com/mfigueredo/boardctl/internal/logging"
)

func newTestClient(t *testing.T, handler http.Handler) (Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, "test-token", 5*time.Second, logging.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return client, server
}

func TestNewRejectsInvalidURL(t *testing.T) {
	if _, err := New("://bad", "", time.Second, nil); err == nil {
		t.Error("expected error for invalid base URL")
	}
}

func TestCreateStory(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Story{ID: "story-1", Title: "Login"})
	}))

	story, err := client.CreateStory(context.Background(), "proj-1", CreateStoryRequest{
		Title:              "Login",
		Persona:            "registered user",
		Objective:          "log into the system",
		Benefit:            "access my board",
		Estimate:           5,
		AcceptanceCriteria: "given valid credentials\nthe session starts",
	})
	if err != nil {
		t.Fatalf("CreateStory failed: %v", err)
	}

	if story.ID != "story-1" {
		t.Errorf("story.ID = %q, want %q", story.ID, "story-1")
	}
	if gotPath != "/projects/proj-1/stories" {
		t.Errorf("path = %q, want %q", gotPath, "/projects/proj-1/stories")
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}

	// The wire keeps the server's Spanish keys for story fields.
	for _, key := range []string{"titulo", "persona", "objetivo", "beneficio", "estimate", "acceptanceCriteria"} {
		if _, ok := gotBody[key]; !ok {
			t.Errorf("request body missing key %q", key)
		}
	}
}

func TestAssignStories(t *testing.T) {
	var gotPath string
	var gotBody assignStoriesRequest

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Sprint{ID: "sprint-1", Name: "Sprint 1", Stories: gotBody.StoryIDs})
	}))

	sprint, err := client.AssignStories(context.Background(), "sprint-1", []string{"story-1", "story-2"})
	if err != nil {
		t.Fatalf("AssignStories failed: %v", err)
	}

	if gotPath != "/sprints/sprint-1/stories" {
		t.Errorf("path = %q, want %q", gotPath, "/sprints/sprint-1/stories")
	}
	if len(gotBody.StoryIDs) != 2 {
		t.Errorf("sent %d story IDs, want 2", len(gotBody.StoryIDs))
	}
	if len(sprint.Stories) != 2 {
		t.Errorf("sprint.Stories = %v, want 2 entries", sprint.Stories)
	}
}

func TestCreateTaskNullAssignee(t *testing.T) {
	var gotBody map[string]any

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Task{ID: "task-1", Name: "do the thing"})
	}))

	task, err := client.CreateTask(context.Background(), CreateTaskRequest{
		Name:       "do the thing",
		AssignedTo: nil,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.ID != "task-1" {
		t.Errorf("task.ID = %q, want %q", task.ID, "task-1")
	}

	// assignedTo is serialized as an explicit null, not omitted.
	v, ok := gotBody["assignedTo"]
	if !ok {
		t.Fatal("request body missing assignedTo")
	}
	if v != nil {
		t.Errorf("assignedTo = %v, want null", v)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		status   int
		sentinel error
	}{
		{http.StatusUnauthorized, apierr.ErrUnauthorized},
		{http.StatusForbidden, apierr.ErrForbidden},
		{http.StatusNotFound, apierr.ErrNotFound},
		{http.StatusInternalServerError, apierr.ErrServerUnavailable},
	}

	for _, tt := range tests {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tt.status)
		}))

		_, err := client.ListSprints(context.Background(), "proj-1")
		if err == nil {
			t.Fatalf("status %d: expected error", tt.status)
		}
		if !apierr.Is(err, tt.sentinel) {
			t.Errorf("status %d: error %v does not match sentinel %v", tt.status, err, tt.sentinel)
		}

		var apiErr *apierr.APIError
		if !apierr.As(err, &apiErr) {
			t.Errorf("status %d: error is not an *apierr.APIError", tt.status)
		} else if apiErr.StatusCode != tt.status {
			t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
		}
	}
}

func TestLogin(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q, want /auth/login", r.URL.Path)
		}
		var req loginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "ana@example.com" {
			t.Errorf("email = %q", req.Email)
		}
		json.NewEncoder(w).Encode(loginResponse{Token: "issued-token"})
	}))

	token, err := client.Login(context.Background(), "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token != "issued-token" {
		t.Errorf("token = %q, want %q", token, "issued-token")
	}
}

func TestLoginEmptyToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(loginResponse{})
	}))

	if _, err := client.Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Error("expected error for empty token response")
	}
}

func TestGetTeam(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/proj-1/team" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Member{
			{ID: "m-1", Name: "Jane Doe", Email: "jane@example.com"},
			{ID: "m-2", Name: "Luis Pérez", Email: "luis@example.com"},
		})
	}))

	members, err := client.GetTeam(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("GetTeam failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}
	if members[1].Name != "Luis Pérez" {
		t.Errorf("members[1].Name = %q", members[1].Name)
	}
}

func TestContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.ListProjects(ctx); err == nil {
		t.Error("expected error for canceled context")
	}
}
