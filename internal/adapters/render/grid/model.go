package grid

import (
	"errors"
	"io"

	"github.com/bnema/barcamp-grid/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	grid   domain.GridEvent
	opts   RenderOptions
	styles styles
	output string
}

func newModel(grid domain.GridEvent, opts RenderOptions) model {
	return model{
		grid:   grid,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.grid, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws the grid as a table of time slots by tracks followed by the
// parking lot.
func Render(grid domain.GridEvent, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(grid, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
