// Package ghactions is a minimal GitHub Actions API client: dispatch a
// workflow_dispatch event and read the workflow run list.
package ghactions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/zyexro/kernelbot/core/logger"
)

const (
	defaultAPIBase  = "https://api.github.com"
	defaultOwner    = "zyexro"
	defaultRepo     = "kernel_builder"
	defaultWorkflow = "main.yml"
	defaultRef      = "enanan"

	acceptHeader = "application/vnd.github.v3+json"

	defaultDialTimeout    = 5 * time.Second
	defaultTLSHandshake   = 5 * time.Second
	defaultClientTimeout  = 30 * time.Second
	defaultHeaderTimeout  = 10 * time.Second
	defaultIdleTimeout    = 30 * time.Second
	maxErrorBodyBytes     = 4 << 10
	maxRunsResponseBytes  = 1 << 20
)

// Config holds GitHub API access settings.
type Config struct {
	APIBase  string `yaml:"api_base" envconfig:"GITHUB_API_BASE"`
	Token    string `yaml:"token" envconfig:"GITHUB_TOKEN"`
	Owner    string `yaml:"owner" envconfig:"GITHUB_OWNER"`
	Repo     string `yaml:"repo" envconfig:"GITHUB_REPO"`
	Workflow string `yaml:"workflow" envconfig:"GITHUB_WORKFLOW"`
	// Ref is the git ref the workflow_dispatch event targets.
	Ref string `yaml:"ref" envconfig:"GITHUB_REF"`
}

// Normalize applies repository defaults and validates the token.
func (c *Config) Normalize() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("github token is required")
	}
	if c.APIBase == "" {
		c.APIBase = defaultAPIBase
	}
	c.APIBase = strings.TrimRight(c.APIBase, "/")
	if c.Owner == "" {
		c.Owner = defaultOwner
	}
	if c.Repo == "" {
		c.Repo = defaultRepo
	}
	if c.Workflow == "" {
		c.Workflow = defaultWorkflow
	}
	if c.Ref == "" {
		c.Ref = defaultRef
	}
	return nil
}

// RemoteError is a non-success response from the GitHub API. The raw
// body is kept so callers can surface it verbatim.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("github API error: %d - %s", e.Status, e.Body)
}

// Run is the subset of a workflow run the bot reports on.
type Run struct {
	ID         int64  `json:"id"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	HTMLURL    string `json:"html_url"`
}

type runsResponse struct {
	WorkflowRuns []Run `json:"workflow_runs"`
}

// Client talks to the GitHub Actions API for one repository.
type Client struct {
	cfg  Config
	http *http.Client
}

// New builds a Client from normalized configuration.
func New(cfg Config) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: defaultDialTimeout}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       defaultIdleTimeout,
		TLSHandshakeTimeout:   defaultTLSHandshake,
		ResponseHeaderTimeout: defaultHeaderTimeout,
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   defaultClientTimeout,
			Transport: transport,
		},
	}
}

// Dispatch fires exactly one workflow_dispatch event. Anything other
// than 204 is returned as *RemoteError; the request is never retried.
func (c *Client) Dispatch(ctx context.Context, inputs map[string]string) error {
	url := fmt.Sprintf("%s/repos/%s/%s/actions/workflows/%s/dispatches",
		c.cfg.APIBase, c.cfg.Owner, c.cfg.Repo, c.cfg.Workflow)

	payload, err := json.Marshal(struct {
		Ref    string            `json:"ref"`
		Inputs map[string]string `json:"inputs"`
	}{Ref: c.cfg.Ref, Inputs: inputs})
	if err != nil {
		return fmt.Errorf("encode dispatch payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build dispatch request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.LogEvent(ctx, logger.GH, slog.LevelWarn, "workflow.dispatch",
			slog.String("status", logger.Status(err)),
			slog.String("workflow", c.cfg.Workflow),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return fmt.Errorf("dispatch workflow: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		logger.LogEvent(ctx, logger.GH, slog.LevelWarn, "workflow.dispatch",
			slog.String("status", "fail"),
			slog.String("workflow", c.cfg.Workflow),
			slog.Int("http_code", resp.StatusCode),
			slog.Duration("duration", logger.Took(start)),
		)
		return &RemoteError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	logger.LogEvent(ctx, logger.GH, slog.LevelDebug, "workflow.dispatch",
		slog.String("status", "ok"),
		slog.String("workflow", c.cfg.Workflow),
		slog.String("ref", c.cfg.Ref),
		slog.Int("inputs", len(inputs)),
		slog.Int("http_code", resp.StatusCode),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// Runs reads the repository's workflow run list, newest first.
func (c *Client) Runs(ctx context.Context) ([]Run, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/actions/runs", c.cfg.APIBase, c.cfg.Owner, c.cfg.Repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build runs request: %w", err)
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.LogEvent(ctx, logger.GH, slog.LevelDebug, "runs.list",
			slog.String("status", logger.Status(err)),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return nil, fmt.Errorf("list workflow runs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		logger.LogEvent(ctx, logger.GH, slog.LevelDebug, "runs.list",
			slog.String("status", "fail"),
			slog.Int("http_code", resp.StatusCode),
			slog.Duration("duration", logger.Took(start)),
		)
		return nil, &RemoteError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed runsResponse
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxRunsResponseBytes))
	if err := dec.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode runs response: %w", err)
	}
	logger.LogEvent(ctx, logger.GH, slog.LevelDebug, "runs.list",
		slog.String("status", "ok"),
		slog.Int("runs", len(parsed.WorkflowRuns)),
		slog.Int("http_code", resp.StatusCode),
		slog.Duration("duration", logger.Took(start)),
	)
	return parsed.WorkflowRuns, nil
}

// LatestRun returns the newest workflow run, if any.
func (c *Client) LatestRun(ctx context.Context) (Run, bool, error) {
	runs, err := c.Runs(ctx)
	if err != nil {
		return Run{}, false, err
	}
	if len(runs) == 0 {
		return Run{}, false, nil
	}
	return runs[0], true, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+c.cfg.Token)
	req.Header.Set("Accept", acceptHeader)
}
