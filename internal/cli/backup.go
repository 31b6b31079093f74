package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"wordsteady/internal/service"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write the backup here instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	repo, closeDB, err := ctx.sessionRepo()
	if err != nil {
		return err
	}
	defer closeDB()

	var w io.Writer = ctx.Out
	if c.Output != "" && c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	n, err := service.NewBackupService(repo).ExportToWriter(context.Background(), w)
	if err != nil {
		return err
	}
	if w != ctx.Out {
		fmt.Fprintf(ctx.Out, "✓ Exported %d session(s) to %s\n", n, c.Output)
	}
	return nil
}

type ImportCmd struct {
	Input   string `arg:"" help:"Backup file to import." type:"existingfile"`
	Replace bool   `help:"Delete every stored session first."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	f, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer f.Close()

	repo, closeDB, err := ctx.sessionRepo()
	if err != nil {
		return err
	}
	defer closeDB()

	n, err := service.NewBackupService(repo).ImportFromReader(context.Background(), f, c.Replace)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Imported %d session(s)\n", n)
	return nil
}
