package n8n

import (
	"sort"
	"strings"
)

// FilterActive returns the workflows with the active flag set, preserving
// the original ordering. The result is always a subset of the input.
func FilterActive(workflows []Workflow) []Workflow {
	var active []Workflow
	for _, wf := range workflows {
		if wf.Active {
			active = append(active, wf)
		}
	}
	return active
}

// FilterByName returns the workflows whose name contains term,
// case-insensitively, preserving the original ordering.
func FilterByName(workflows []Workflow, term string) []Workflow {
	needle := strings.ToLower(term)
	var matched []Workflow
	for _, wf := range workflows {
		if strings.Contains(strings.ToLower(wf.Name), needle) {
			matched = append(matched, wf)
		}
	}
	return matched
}

// CollectNodeOutputs extracts per-node outputs from an execution, ordered by
// node name. Returns nil when the execution carries no run data.
func CollectNodeOutputs(execution *Execution) []NodeOutput {
	if execution == nil || execution.Data == nil {
		return nil
	}

	runData := execution.Data.ResultData.RunData
	if len(runData) == 0 {
		return nil
	}

	names := make([]string, 0, len(runData))
	for name := range runData {
		names = append(names, name)
	}
	sort.Strings(names)

	outputs := make([]NodeOutput, 0, len(names))
	for _, name := range names {
		outputs = append(outputs, NodeOutput{Node: name, Runs: runData[name]})
	}
	return outputs
}

// FilterFailed returns the outputs whose runs carry an error marker,
// preserving the input ordering.
func FilterFailed(outputs []NodeOutput) []NodeOutput {
	var failed []NodeOutput
	for _, output := range outputs {
		if output.Failed() {
			failed = append(failed, output)
		}
	}
	return failed
}
