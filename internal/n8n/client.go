package n8n

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

	"github.com/ngaio-labs/ngaio/internal/envs"
	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
)

const (
	// apiBasePath is the versioned REST base path on the server.
	apiBasePath = "/api/v1"

	// apiKeyHeader carries the API key on every request.
	apiKeyHeader = "X-N8N-API-KEY"

	defaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error response is kept for display.
	maxErrorBody = 2048
)

// Client performs authenticated requests against one n8n server.
// Each command constructs exactly one Client from a resolved profile;
// there are no retries and no pagination beyond a single response.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client for the given environment profile.
func NewClient(profile envs.Profile) *Client {
	return &Client{
		baseURL:    strings.TrimRight(profile.BaseURL, "/"),
		apiKey:     profile.APIKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// ListWorkflows fetches all workflows known to the server.
func (c *Client) ListWorkflows(ctx context.Context) ([]Workflow, error) {
	var envelope listEnvelope[Workflow]
	if err := c.get(ctx, apiBasePath+"/workflows", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetWorkflow fetches a single workflow by ID.
func (c *Client) GetWorkflow(ctx context.Context, id string) (*Workflow, error) {
	var workflow Workflow
	if err := c.get(ctx, apiBasePath+"/workflows/"+url.PathEscape(id), nil, &workflow); err != nil {
		return nil, err
	}
	return &workflow, nil
}

// ActiveWorkflows fetches all workflows and filters to those with the active
// flag set. The filter is pure post-processing and preserves server ordering.
func (c *Client) ActiveWorkflows(ctx context.Context) ([]Workflow, error) {
	workflows, err := c.ListWorkflows(ctx)
	if err != nil {
		return nil, err
	}
	return FilterActive(workflows), nil
}

// SearchWorkflows fetches all workflows and filters to those whose name
// contains the term, case-insensitively.
func (c *Client) SearchWorkflows(ctx context.Context, term string) ([]Workflow, error) {
	workflows, err := c.ListWorkflows(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByName(workflows, term), nil
}

// ExecutionListOptions narrows an execution listing.
type ExecutionListOptions struct {
	// WorkflowID limits results to executions of one workflow.
	WorkflowID string

	// Status limits results to one execution status (success, error, waiting).
	Status string
}

// ListExecutions fetches executions, optionally narrowed by workflow and status.
func (c *Client) ListExecutions(ctx context.Context, opts ExecutionListOptions) ([]Execution, error) {
	query := url.Values{}
	if opts.WorkflowID != "" {
		query.Set("workflowId", opts.WorkflowID)
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}

	var envelope listEnvelope[Execution]
	if err := c.get(ctx, apiBasePath+"/executions", query, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetExecution fetches a single execution including its per-node run data.
func (c *Client) GetExecution(ctx context.Context, id string) (*Execution, error) {
	query := url.Values{}
	query.Set("includeData", "true")

	var execution Execution
	if err := c.get(ctx, apiBasePath+"/executions/"+url.PathEscape(id), query, &execution); err != nil {
		return nil, err
	}
	return &execution, nil
}

// NodeOutputs fetches an execution and extracts its per-node outputs,
// ordered by node name.
func (c *Client) NodeOutputs(ctx context.Context, executionID string) ([]NodeOutput, error) {
	execution, err := c.GetExecution(ctx, executionID)
	if err != nil {
		return nil, err
	}
	return CollectNodeOutputs(execution), nil
}

// NodeOutput fetches the output of one named node within an execution.
// Returns nil (and no error) when the node produced no runs.
func (c *Client) NodeOutput(ctx context.Context, executionID, node string) (*NodeOutput, error) {
	outputs, err := c.NodeOutputs(ctx, executionID)
	if err != nil {
		return nil, err
	}
	for i := range outputs {
		if outputs[i].Node == node {
			return &outputs[i], nil
		}
	}
	return nil, nil
}

// ExecutionErrors fetches an execution and filters its node outputs to those
// carrying an error marker. Pure post-processing, no extra network calls.
func (c *Client) ExecutionErrors(ctx context.Context, executionID string) ([]NodeOutput, error) {
	outputs, err := c.NodeOutputs(ctx, executionID)
	if err != nil {
		return nil, err
	}
	return FilterFailed(outputs), nil
}

// ListCredentials fetches credential metadata from the server. Secret
// material is never returned by the API.
func (c *Client) ListCredentials(ctx context.Context) ([]Credential, error) {
	var envelope listEnvelope[Credential]
	if err := c.get(ctx, apiBasePath+"/credentials", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// Trigger posts a JSON payload to a production webhook path and returns the
// raw response body. The payload is validated locally before any request is
// made; a malformed payload never reaches the network.
func (c *Client) Trigger(ctx context.Context, webhookPath string, payload []byte) (string, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return "", kerrors.ErrEmptyPayload
	}
	if !json.Valid(payload) {
		return "", kerrors.ErrInvalidPayload
	}

	fullURL := c.baseURL + "/webhook/" + strings.TrimPrefix(webhookPath, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building trigger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ConnectionError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ConnectionError{URL: fullURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: truncate(string(body))}
	}

	return string(body), nil
}

// get performs one authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectionError{URL: fullURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: truncate(string(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ParseError{Err: err}
	}

	return nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
