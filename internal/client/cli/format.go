package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/iudanet/stravadash/internal/client/iocli"
)

// newFlagSet returns a flag set that reports errors instead of exiting
func newFlagSet(name string, io iocli.IO) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io)
	return fs
}

// parseID reads the activity id from args[0] and returns the remaining args
func parseID(command string, args []string) (int64, []string, error) {
	if len(args) == 0 {
		return 0, nil, fmt.Errorf("missing activity id. Usage: stravadash %s <id>", command)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, nil, fmt.Errorf("invalid activity id: %q", args[0])
	}
	return id, args[1:], nil
}

func (c *Cli) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
}

func (c *Cli) printJSON(v any) error {
	enc := json.NewEncoder(c.io)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// warnStale сообщает, что показаны ранее загруженные данные
func (c *Cli) warnStale(err error) {
	c.io.Printf("Warning: %v\n", err)
	c.io.Println("Showing previously loaded data.")
	c.io.Println()
}

func formatUnix(ts int64) string {
	return time.Unix(ts, 0).Format(time.RFC3339)
}

func formatKm(meters float64) string {
	return strconv.FormatFloat(meters/1000, 'f', 2, 64)
}

func formatDuration(seconds int64) string {
	return (time.Duration(seconds) * time.Second).String()
}

// formatPace переводит м/с в мин:сек на км
func formatPace(speed float64) string {
	if speed <= 0 {
		return "-"
	}
	total := int64(math.Round(1000 / speed))
	return fmt.Sprintf("%d:%02d /km", total/60, total%60)
}

func formatSpeed(speed float64) string {
	return strconv.FormatFloat(speed*3.6, 'f', 1, 64) + " km/h"
}

// startDay cuts an ISO 8601 start date to YYYY-MM-DD
func startDay(date string) string {
	if len(date) >= 10 {
		return date[:10]
	}
	return date
}
