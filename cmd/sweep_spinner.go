package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type sweepDoneMsg struct {
	swept int
	err   error
}

type sweepSpinnerModel struct {
	spinner spinner.Model
	label   string
	sweep   tea.Cmd
	swept   int
	err     error
	done    bool
}

func newSweepSpinnerModel(label string, sweep tea.Cmd) sweepSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return sweepSpinnerModel{
		spinner: s,
		label:   label,
		sweep:   sweep,
	}
}

func (m sweepSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.sweep)
}

func (m sweepSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case sweepDoneMsg:
		m.done = true
		m.swept = msg.swept
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m sweepSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runSweepSpinner(ctx context.Context, output io.Writer, sweep func(context.Context) (int, error)) (int, error) {
	sweepCmd := func() tea.Msg {
		swept, err := sweep(ctx)
		return sweepDoneMsg{swept: swept, err: err}
	}

	p := tea.NewProgram(
		newSweepSpinnerModel("Sweeping expired boosts...", sweepCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}

	result, ok := finalModel.(sweepSpinnerModel)
	if !ok {
		return 0, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.swept, result.err
}
