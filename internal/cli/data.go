package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

type DataExportCmd struct {
	Output string `help:"Write to a file instead of stdout." type:"path"`
	Remote bool   `help:"Export the server-side copy instead of the local document."`
}

func (c *DataExportCmd) Run(ctx *Context) error {
	var data []byte
	var err error
	if c.Remote {
		data, err = ctx.FetchRemote(context.Background(), "export")
	} else {
		if err := ctx.LoadStore(); err != nil {
			return err
		}
		data, err = ctx.Store.ExportSnapshot()
	}
	if err != nil {
		return err
	}

	if c.Output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported document to %s\n", c.Output)
	return nil
}

type DataImportCmd struct {
	Input string `arg:"" help:"Exported document file." type:"existingfile"`
}

func (c *DataImportCmd) Run(ctx *Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}

	data, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	// Keep a backup of the current data before overwriting it.
	ctx.PerformAutomaticBackup()

	if err := ctx.Store.ImportSnapshot(data); err != nil {
		return err
	}
	fmt.Printf("Imported document from %s\n", c.Input)
	return nil
}

type DataResetCmd struct {
	Force bool `help:"Skip the confirmation prompt."`
}

func (c *DataResetCmd) Run(ctx *Context) error {
	if !c.Force {
		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Delete all tracked data?").
				Description("The activity log, notes, progress, and challenges will be reinitialized.").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := ctx.LoadStore(); err == nil {
		ctx.PerformAutomaticBackup()
	}

	if err := ctx.Store.Reset(); err != nil {
		return err
	}
	fmt.Println("Reset complete. Storage reinitialized with the default catalogs.")
	return nil
}
