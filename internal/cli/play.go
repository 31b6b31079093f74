package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wordsteady/internal/database"
	"wordsteady/internal/game"
	"wordsteady/internal/logger"
	"wordsteady/internal/repository"
	"wordsteady/internal/service"
	"wordsteady/internal/tui"
)

type PlayCmd struct {
	Date    string `help:"Play the pack for this day (YYYY-MM-DD) instead of today."`
	DB      string `help:"Local session store." type:"path" default:"~/.local/share/wordsteady/sessions.db"`
	LogFile string `help:"Log file while the UI owns the terminal." type:"path" default:"~/.local/share/wordsteady/wordsteady.log"`
	Learner string `help:"Learner name the local sessions are kept under." default:"local"`
}

func (c *PlayCmd) Run(ctx *Context) error {
	if err := logger.Init(logger.Config{Level: ctx.Config.LogLevel, File: c.LogFile, Quiet: true}); err != nil {
		return err
	}

	bg := context.Background()
	loader, err := ctx.newLoader(bg)
	if err != nil {
		return err
	}
	pack, err := loader.Load(bg, c.Date)
	if err != nil {
		return fmt.Errorf("this day's content cannot be played: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.DB), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := database.Initialize(c.DB)
	if err != nil {
		return fmt.Errorf("failed to open local session store: %w", err)
	}
	defer db.Close()

	sessions := service.NewSessionService(repository.NewSessionRepository(db))
	day := loader.Day(c.Date)
	machine := game.NewMachine(
		pack,
		sessions.Store(bg, c.Learner, day, pack.Word),
		service.StorageKey(day, pack.Word),
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	p := tea.NewProgram(tui.NewModel(machine), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
