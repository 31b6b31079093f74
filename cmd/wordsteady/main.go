package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"wordsteady/internal/cli"
	"wordsteady/internal/config"
	"wordsteady/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag

	Play     cli.PlayCmd     `cmd:"" help:"Play today's session in the terminal." default:"1"`
	Validate cli.ValidateCmd `cmd:"" help:"Check a content pack and report problems."`
	Key      cli.KeyCmd      `cmd:"" help:"Print the storage key for a word and day."`
	Secret   cli.SecretCmd   `cmd:"" help:"Generate a SESSION_SECRET value."`
	Sessions struct {
		Purge  cli.PurgeCmd  `cmd:"" help:"Delete sessions from previous days."`
		Stats  cli.StatsCmd  `cmd:"" help:"Count stored sessions per day."`
		Export cli.ExportCmd `cmd:"" help:"Export stored sessions as JSON."`
		Import cli.ImportCmd `cmd:"" help:"Import sessions from a JSON export."`
	} `cmd:"" help:"Manage the server's session store."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("wordsteady"),
		kong.Description("Daily vocabulary practice: build the word, then build sentences with it."),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err := ctx.Run(&cli.Context{Config: cfg, Out: os.Stdout})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
