package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mahavak/rhonda/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}

	model := tui.NewModel(ctx.Store, ctx.Recorder)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
