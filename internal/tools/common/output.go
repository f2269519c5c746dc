package common

import (
	"context"
	"encoding/json"
	"io"
	"time"
)

// ExitFailure is the process exit code of a tool run with a failed step.
const ExitFailure = 3

// Step is one named unit of a migrate or seed run. Run returns a one-line
// detail for the operator.
type Step struct {
	Name string
	Run  func(ctx context.Context) (string, error)
}

type StepResult struct {
	Name    string        `json:"name"`
	OK      bool          `json:"ok"`
	Detail  string        `json:"detail,omitempty"`
	Error   string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// RunStep executes a single step and records its outcome.
func RunStep(ctx context.Context, step Step) (StepResult, error) {
	start := time.Now()
	detail, err := step.Run(ctx)
	res := StepResult{Name: step.Name, OK: err == nil, Detail: detail, Elapsed: time.Since(start)}
	if err != nil {
		res.Error = err.Error()
	}
	return res, err
}

// RunSteps executes steps in order and stops at the first failure.
func RunSteps(ctx context.Context, steps []Step) ([]StepResult, error) {
	results := make([]StepResult, 0, len(steps))
	for _, step := range steps {
		res, err := RunStep(ctx, step)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// CIResult is the machine-readable report printed with --ci.
type CIResult struct {
	Command string       `json:"command"`
	OK      bool         `json:"ok"`
	Steps   []StepResult `json:"steps"`
	Error   string       `json:"error,omitempty"`
}

func WriteCIResult(w io.Writer, command string, steps []StepResult, err error) error {
	result := CIResult{Command: command, OK: err == nil, Steps: steps}
	if result.Steps == nil {
		result.Steps = []StepResult{}
	}
	if err != nil {
		result.Error = err.Error()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
