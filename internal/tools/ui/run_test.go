package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandeepkv93/storefront-admin-api/internal/tools/common"
)

func stepForTest(name, detail string, err error) common.Step {
	return common.Step{Name: name, Run: func(context.Context) (string, error) { return detail, err }}
}

// drive feeds the model its own commands until it quits.
func drive(t *testing.T, m model) model {
	t.Helper()
	cmd := m.Init()
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		done, ok := msg.(stepDoneMsg)
		if !ok {
			break
		}
		next, nextCmd := m.Update(done)
		m, cmd = next.(model), nextCmd
	}
	return m
}

func TestModelRunsStepsInOrder(t *testing.T) {
	m := drive(t, newModel(context.Background(), "migrate up", []common.Step{
		stepForTest("connect", "sqlite database reachable", nil),
		stepForTest("migrate", "13 tables", nil),
	}))
	if !m.done || m.err != nil || len(m.results) != 2 {
		t.Fatalf("unexpected final model: done=%v err=%v results=%+v", m.done, m.err, m.results)
	}
	view := m.View()
	for _, want := range []string{"migrate up", "✓ connect", "sqlite database reachable", "13 tables", "OK"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestModelStopsAtFirstFailure(t *testing.T) {
	ran := false
	m := drive(t, newModel(context.Background(), "seed apply", []common.Step{
		stepForTest("connect", "", errors.New("db ping: refused")),
		{Name: "seed", Run: func(context.Context) (string, error) { ran = true; return "", nil }},
	}))
	if ran {
		t.Fatal("steps after a failure must not run")
	}
	if m.err == nil || len(m.results) != 1 {
		t.Fatalf("expected one failed result, got err=%v results=%+v", m.err, m.results)
	}
	view := m.View()
	if !strings.Contains(view, "✗ connect: db ping: refused") || !strings.Contains(view, "- ") || !strings.Contains(view, "FAILED") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}
