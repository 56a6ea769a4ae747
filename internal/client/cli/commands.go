package cli

import (
	"context"
	"fmt"
)

// Run выполняет команду с аргументами (без имени команды)
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "athlete":
		return c.runAthlete(ctx)
	case "activities":
		return c.runActivities(ctx, args)
	case "activity":
		return c.runActivity(ctx, args)
	case "laps":
		return c.runLaps(ctx, args)
	case "streams":
		return c.runStreams(ctx, args)
	case "stats":
		return c.runStats(ctx)
	case "route":
		return c.runRoute(ctx, args)
	case "routes":
		return c.runRoutes(ctx, args)
	case "records":
		return c.runRecords(ctx)
	case "summary":
		return c.runSummary(ctx, args)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}
