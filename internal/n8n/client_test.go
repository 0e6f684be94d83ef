package n8n

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ngaio-labs/ngaio/internal/envs"
	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
)

func testClient(server *httptest.Server) *Client {
	return NewClient(envs.Profile{
		BaseURL: server.URL,
		APIKey:  "test-api-key",
	})
}

func TestListWorkflows_SendsAPIKeyHeader(t *testing.T) {
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-N8N-API-KEY")
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	client := testClient(server)
	if _, err := client.ListWorkflows(context.Background()); err != nil {
		t.Fatalf("ListWorkflows failed: %v", err)
	}
	if gotHeader != "test-api-key" {
		t.Errorf("Expected API key header test-api-key, got %q", gotHeader)
	}
}

func TestListWorkflows_Path(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"data":[{"id":"1","name":"Daily sync","active":true}]}`)
	}))
	defer server.Close()

	client := testClient(server)
	workflows, err := client.ListWorkflows(context.Background())
	if err != nil {
		t.Fatalf("ListWorkflows failed: %v", err)
	}
	if gotPath != "/api/v1/workflows" {
		t.Errorf("Expected path /api/v1/workflows, got %s", gotPath)
	}
	if len(workflows) != 1 {
		t.Fatalf("Expected 1 workflow, got %d", len(workflows))
	}
	if workflows[0].Name != "Daily sync" || !workflows[0].Active {
		t.Errorf("Unexpected workflow decoded: %+v", workflows[0])
	}
}

func TestListExecutions_QueryParameters(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	client := testClient(server)
	_, err := client.ListExecutions(context.Background(), ExecutionListOptions{
		WorkflowID: "42",
		Status:     "error",
	})
	if err != nil {
		t.Fatalf("ListExecutions failed: %v", err)
	}
	if gotQuery != "status=error&workflowId=42" {
		t.Errorf("Unexpected query string: %s", gotQuery)
	}
}

func TestGetExecution_IncludesData(t *testing.T) {
	var gotQuery, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"id":7,"workflowId":"42","status":"success","finished":true}`)
	}))
	defer server.Close()

	client := testClient(server)
	execution, err := client.GetExecution(context.Background(), "7")
	if err != nil {
		t.Fatalf("GetExecution failed: %v", err)
	}
	if gotPath != "/api/v1/executions/7" {
		t.Errorf("Expected path /api/v1/executions/7, got %s", gotPath)
	}
	if gotQuery != "includeData=true" {
		t.Errorf("Expected includeData=true query, got %s", gotQuery)
	}
	if execution.Status != "success" || !execution.Finished {
		t.Errorf("Unexpected execution decoded: %+v", execution)
	}
}

func TestGet_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"unauthorized"}`)
	}))
	defer server.Close()

	client := testClient(server)
	_, err := client.ListWorkflows(context.Background())
	if err == nil {
		t.Fatalf("Expected an error for 401 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", apiErr.StatusCode)
	}
}

func TestGet_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json at all`)
	}))
	defer server.Close()

	client := testClient(server)
	_, err := client.ListWorkflows(context.Background())
	if err == nil {
		t.Fatalf("Expected an error for malformed response")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %T: %v", err, err)
	}
}

func TestGet_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Nothing is listening anymore.

	client := testClient(server)
	_, err := client.ListWorkflows(context.Background())
	if err == nil {
		t.Fatalf("Expected a connection error")
	}

	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("Expected ConnectionError, got %T: %v", err, err)
	}
}

func TestTrigger_PostsPayload(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := testClient(server)
	body, err := client.Trigger(context.Background(), "order-intake", []byte(`{"order":17}`))
	if err != nil {
		t.Fatalf("Trigger failed: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("Expected POST, got %s", gotMethod)
	}
	if gotPath != "/webhook/order-intake" {
		t.Errorf("Expected path /webhook/order-intake, got %s", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Expected JSON content type, got %s", gotContentType)
	}
	if body != `{"ok":true}` {
		t.Errorf("Unexpected response body: %s", body)
	}
}

func TestTrigger_RejectsInvalidPayloadLocally(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := testClient(server)

	_, err := client.Trigger(context.Background(), "order-intake", []byte(`{"broken":`))
	if !errors.Is(err, kerrors.ErrInvalidPayload) {
		t.Errorf("Expected ErrInvalidPayload, got %v", err)
	}

	_, err = client.Trigger(context.Background(), "order-intake", []byte("   "))
	if !errors.Is(err, kerrors.ErrEmptyPayload) {
		t.Errorf("Expected ErrEmptyPayload, got %v", err)
	}

	if requests != 0 {
		t.Errorf("Expected no network requests for invalid payloads, got %d", requests)
	}
}

func TestNodeOutput_AbsentNodeReturnsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":7,"status":"success","data":{"resultData":{"runData":{"Fetch":[{"executionTime":12}]}}}}`)
	}))
	defer server.Close()

	client := testClient(server)
	output, err := client.NodeOutput(context.Background(), "7", "DoesNotExist")
	if err != nil {
		t.Fatalf("NodeOutput failed: %v", err)
	}
	if output != nil {
		t.Errorf("Expected nil output for absent node, got %+v", output)
	}

	output, err = client.NodeOutput(context.Background(), "7", "Fetch")
	if err != nil {
		t.Fatalf("NodeOutput failed: %v", err)
	}
	if output == nil {
		t.Fatalf("Expected output for node Fetch")
	}
}
