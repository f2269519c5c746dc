package common

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestRunStepsStopsAtFirstFailureAndReports(t *testing.T) {
	var order []string
	step := func(name string, err error) Step {
		return Step{Name: name, Run: func(context.Context) (string, error) {
			order = append(order, name)
			return name + " done", err
		}}
	}
	results, err := RunSteps(context.Background(), []Step{
		step("connect", nil),
		step("migrate", errors.New("table blogs: locked")),
		step("seed", nil),
	})
	if err == nil || len(results) != 2 || len(order) != 2 {
		t.Fatalf("expected stop after migrate, got err=%v results=%+v order=%v", err, results, order)
	}
	if !results[0].OK || results[1].OK || results[1].Error != "table blogs: locked" {
		t.Fatalf("unexpected results %+v", results)
	}

	var buf bytes.Buffer
	if err := WriteCIResult(&buf, "migrate up", results, err); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got CIResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.OK || got.Command != "migrate up" || got.Error != "table blogs: locked" || len(got.Steps) != 2 || got.Steps[0].Detail != "connect done" {
		t.Fatalf("unexpected ci result %+v", got)
	}

	buf.Reset()
	_ = WriteCIResult(&buf, "seed dry-run", nil, nil)
	if !bytes.Contains(buf.Bytes(), []byte(`"steps": []`)) || !bytes.Contains(buf.Bytes(), []byte(`"ok": true`)) {
		t.Fatalf("expected empty steps array, got %s", buf.String())
	}
}
