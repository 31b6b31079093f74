package cli

import (
	"errors"
	"fmt"
	"os"

	"wordsteady/internal/content"
)

type ValidateCmd struct {
	File string `arg:"" help:"Pack document to check." type:"existingfile"`
}

func (c *ValidateCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	pack, err := content.Parse(data)
	if err != nil && !errors.Is(err, content.ErrInvalidPack) {
		return fmt.Errorf("failed to decode %s: %w", c.File, err)
	}

	fmt.Fprintf(ctx.Out, "Word:      %s (%s)\n", pack.Word, pack.Display)
	fmt.Fprintf(ctx.Out, "Starters:  %d\n", len(pack.Starters))
	fmt.Fprintf(ctx.Out, "Finishers: %d\n", len(pack.Finishers))
	fmt.Fprintf(ctx.Out, "Target:    %d\n", pack.Step3Target)

	for _, w := range content.Lint(pack) {
		fmt.Fprintf(ctx.Out, "⚠ %s\n", w)
	}
	if err != nil {
		fmt.Fprintf(ctx.Out, "✗ %v\n", err)
		return err
	}
	fmt.Fprintln(ctx.Out, "✓ Pack is valid")
	return nil
}
