package cli

import (
	"context"
	"fmt"
	"io"

	"wordsteady/internal/config"
	"wordsteady/internal/content"
	"wordsteady/internal/database"
	"wordsteady/internal/repository"
	"wordsteady/internal/service"
)

type Context struct {
	Config *config.Config
	Out    io.Writer
}

// openDB connects to the configured session store and applies migrations
func (c *Context) openDB() (*database.DB, error) {
	db, err := database.InitializeWithConfig(c.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.RunMigrations(c.Config.MigrationsPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func (c *Context) sessionRepo() (*repository.SessionRepository, func(), error) {
	db, err := c.openDB()
	if err != nil {
		return nil, nil, err
	}
	return repository.NewSessionRepository(db), func() { db.Close() }, nil
}

func (c *Context) newLoader(ctx context.Context) (*content.Loader, error) {
	loc, err := c.Config.Location()
	if err != nil {
		return nil, err
	}
	source, err := content.NewSource(ctx, c.Config.ContentSourceOptions())
	if err != nil {
		return nil, err
	}
	return content.NewLoader(source, loc), nil
}

var _ service.BackupRepo = (*repository.SessionRepository)(nil)
