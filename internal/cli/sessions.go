package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"wordsteady/internal/content"
	"wordsteady/internal/security"
	"wordsteady/internal/service"
)

type PurgeCmd struct {
	Days int `help:"Keep this many previous days. 0 uses PURGE_AFTER_DAYS."`
}

func (c *PurgeCmd) Run(ctx *Context) error {
	days := c.Days
	if days <= 0 {
		days = ctx.Config.PurgeAfterDays
	}
	loc, err := ctx.Config.Location()
	if err != nil {
		return err
	}

	repo, closeDB, err := ctx.sessionRepo()
	if err != nil {
		return err
	}
	defer closeDB()

	before := time.Now().In(loc).AddDate(0, 0, -days)
	n, err := service.NewSessionService(repo).Purge(context.Background(), before)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Removed %d session(s) from before %s\n", n, before.Format(time.DateOnly))
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	repo, closeDB, err := ctx.sessionRepo()
	if err != nil {
		return err
	}
	defer closeDB()

	counts, err := repo.CountByDay(context.Background())
	if err != nil {
		return fmt.Errorf("failed to count sessions: %w", err)
	}
	if len(counts) == 0 {
		fmt.Fprintln(ctx.Out, "No stored sessions.")
		return nil
	}

	days := make([]string, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	for _, d := range days {
		fmt.Fprintf(ctx.Out, "%s  %d\n", d, counts[d])
	}
	return nil
}

type KeyCmd struct {
	Word string `arg:"" help:"Word of the day."`
	Date string `help:"Day (YYYY-MM-DD). Defaults to today."`
}

func (c *KeyCmd) Run(ctx *Context) error {
	loc, err := ctx.Config.Location()
	if err != nil {
		return err
	}

	day := time.Now().In(loc)
	if c.Date != "" {
		if !content.ValidDate(c.Date) {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", c.Date)
		}
		day, err = time.ParseInLocation(time.DateOnly, c.Date, loc)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", c.Date, err)
		}
	}

	fmt.Fprintln(ctx.Out, service.StorageKey(day, strings.ToUpper(strings.TrimSpace(c.Word))))
	return nil
}

type SecretCmd struct{}

func (c *SecretCmd) Run(ctx *Context) error {
	secret, err := security.GenerateSecret()
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, secret)
	return nil
}
