package n8n

import (
	"encoding/json"
	"time"
)

// Workflow is a named automation graph owned by the remote n8n server.
type Workflow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	Nodes     []Node    `json:"nodes,omitempty"`
	Tags      []Tag     `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Node is one step inside a workflow graph.
type Node struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Tag is a label attached to a workflow.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Execution is one run instance of a workflow.
type Execution struct {
	ID         json.Number    `json:"id"`
	WorkflowID string         `json:"workflowId"`
	Status     string         `json:"status"`
	Mode       string         `json:"mode"`
	Finished   bool           `json:"finished"`
	StartedAt  *time.Time     `json:"startedAt,omitempty"`
	StoppedAt  *time.Time     `json:"stoppedAt,omitempty"`
	Data       *ExecutionData `json:"data,omitempty"`
}

// ExecutionData carries the per-node results of a finished execution.
// Only populated when the execution is fetched with includeData=true.
type ExecutionData struct {
	ResultData ResultData `json:"resultData"`
}

// ResultData maps node names to the runs they performed.
type ResultData struct {
	RunData          map[string][]NodeRun `json:"runData"`
	LastNodeExecuted string               `json:"lastNodeExecuted,omitempty"`
	Error            *NodeError           `json:"error,omitempty"`
}

// NodeRun is one invocation of a node within an execution.
type NodeRun struct {
	StartTime     int64           `json:"startTime"`
	ExecutionTime int64           `json:"executionTime"`
	Error         *NodeError      `json:"error,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
}

// NodeError is the error marker a failed node leaves in its run data.
type NodeError struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	NodeName    string `json:"node,omitempty"`
}

// NodeOutput pairs a node name with the runs it produced in one execution.
type NodeOutput struct {
	Node string
	Runs []NodeRun
}

// Failed reports whether any run of this node carries an error marker.
func (o NodeOutput) Failed() bool {
	for _, run := range o.Runs {
		if run.Error != nil {
			return true
		}
	}
	return false
}

// Credential is a stored credential on the remote server. The API never
// returns secret material, only metadata.
type Credential struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// listEnvelope is the paging wrapper the API puts around list responses.
type listEnvelope[T any] struct {
	Data       []T     `json:"data"`
	NextCursor *string `json:"nextCursor,omitempty"`
}
