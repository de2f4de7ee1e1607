package plan

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

// GenerateRequest is the payload sent to the plan-generation webhook. The
// webhook runs the two planning agents and answers with a Payload.
type GenerateRequest struct {
	ProjectName  string   `json:"projectName"`
	Description  string   `json:"description,omitempty"`
	Team         []string `json:"team"`
	Requirements string   `json:"requirements"`
}

// Generator calls the external plan-generation webhook. It is fire-once:
// the apply workflow never talks to the generator, it only consumes a
// Payload that was generated and reviewed beforehand.
type Generator struct {
	webhookURL string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewGenerator creates a Generator for the given webhook URL. Generation is
// slow, so callers should pass a generous timeout.
func NewGenerator(webhookURL string, timeout time.Duration, logger *logging.Logger) (*Generator, error) {
	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return nil, fmt.Errorf("invalid webhook URL: %w", err)
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &Generator{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Generate posts the planning request and parses the returned payload.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*Payload, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode planning request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.webhookURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build planning request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	g.logger.Info("requesting plan from generator", "project", req.ProjectName, "team_size", len(req.Team))

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("plan generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generator response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierr.NewAPIError("generate plan", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	payload, err := Parse(body)
	if err != nil {
		return nil, err
	}

	g.logger.Info("plan received", "sections", len(payload.Agents))
	return payload, nil
}
