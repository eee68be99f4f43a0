package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dispenseDoneMsg struct {
	err error
}

type dispenseSpinnerModel struct {
	spinner  spinner.Model
	label    string
	dispense tea.Cmd
	err      error
	done     bool
}

func newDispenseSpinnerModel(label string, dispense tea.Cmd) dispenseSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("114"))),
	)

	return dispenseSpinnerModel{
		spinner:  s,
		label:    label,
		dispense: dispense,
	}
}

func (m dispenseSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.dispense)
}

func (m dispenseSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case dispenseDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m dispenseSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runDispenseSpinner(ctx context.Context, output io.Writer, dispense func(context.Context) error) error {
	dispenseCmd := func() tea.Msg {
		return dispenseDoneMsg{err: dispense(ctx)}
	}

	p := tea.NewProgram(
		newDispenseSpinnerModel("Drawing an article...", dispenseCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(dispenseSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
