package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/storefront-admin-api/internal/tools/common"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type stepDoneMsg struct {
	result common.StepResult
	err    error
}

// model renders a migrate or seed run one step per line and executes the
// steps sequentially, stopping at the first failure.
type model struct {
	ctx     context.Context
	title   string
	steps   []common.Step
	results []common.StepResult
	err     error
	done    bool
}

func newModel(ctx context.Context, title string, steps []common.Step) model {
	return model{ctx: ctx, title: title, steps: steps, done: len(steps) == 0}
}

func (m model) runNext() tea.Cmd {
	step := m.steps[len(m.results)]
	ctx := m.ctx
	return func() tea.Msg {
		res, err := common.RunStep(ctx, step)
		return stepDoneMsg{result: res, err: err}
	}
}

func (m model) Init() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	return m.runNext()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.err = context.Canceled
			m.done = true
			return m, tea.Quit
		}
	case stepDoneMsg:
		m.results = append(m.results, msg.result)
		if msg.err != nil {
			m.err = msg.err
			m.done = true
			return m, tea.Quit
		}
		if len(m.results) == len(m.steps) {
			m.done = true
			return m, tea.Quit
		}
		return m, m.runNext()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, step := range m.steps {
		switch {
		case i < len(m.results) && m.results[i].OK:
			r := m.results[i]
			fmt.Fprintf(&b, "%s %s %s", okStyle.Render("✓"), step.Name, pendingStyle.Render(r.Elapsed.Round(time.Millisecond).String()))
			if r.Detail != "" {
				fmt.Fprintf(&b, "\n    %s", r.Detail)
			}
		case i < len(m.results):
			fmt.Fprintf(&b, "%s %s: %s", failStyle.Render("✗"), step.Name, m.results[i].Error)
		case i == len(m.results) && !m.done:
			fmt.Fprintf(&b, "%s %s", pendingStyle.Render("…"), step.Name)
		default:
			fmt.Fprintf(&b, "%s %s", pendingStyle.Render("-"), pendingStyle.Render(step.Name))
		}
		b.WriteString("\n")
	}
	if m.done {
		if m.err != nil {
			b.WriteString("\n" + failStyle.Render("FAILED") + "\n")
		} else {
			b.WriteString("\n" + okStyle.Render("OK") + "\n")
		}
	}
	return b.String()
}

// Run executes steps inside an interactive progress view.
func Run(ctx context.Context, title string, steps []common.Step) ([]common.StepResult, error) {
	final, err := tea.NewProgram(newModel(ctx, title, steps), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, err
	}
	res := final.(model)
	return res.results, res.err
}

// Execute runs steps headless with a JSON report on out when ci is set, and
// in the progress view otherwise.
func Execute(ctx context.Context, out io.Writer, ci bool, title string, steps []common.Step) error {
	if !ci {
		_, err := Run(ctx, title, steps)
		return err
	}
	results, err := common.RunSteps(ctx, steps)
	if werr := common.WriteCIResult(out, title, results, err); werr != nil && err == nil {
		err = werr
	}
	return err
}
