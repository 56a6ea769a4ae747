package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/iudanet/stravadash/internal/client/data"
	"github.com/iudanet/stravadash/internal/models"
	"github.com/iudanet/stravadash/pkg/api"
)

// loadAll загружает все активности; при ошибке остаются ранее загруженные
func (c *Cli) loadAll(ctx context.Context, quiet bool) error {
	err := c.data.LoadAllActivities(ctx)
	if err == nil {
		return nil
	}
	if len(c.data.Activities()) == 0 {
		return err
	}
	if !quiet {
		c.warnStale(err)
	}
	return nil
}

func (c *Cli) runRecords(ctx context.Context) error {
	if err := c.loadAll(ctx, false); err != nil {
		return err
	}

	records := c.data.Records()
	if len(records) == 0 {
		c.io.Println("No activities yet.")
		return nil
	}

	tw := c.newTable()
	_, _ = fmt.Fprintln(tw, "RECORD\tVALUE\tACTIVITY\tDATE")
	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s (%d)\t%s\n", r.Label, formatRecord(r.Value, r.Unit), r.ActivityName, r.ActivityID, startDay(r.Date))
	}
	return tw.Flush()
}

func formatRecord(value float64, unit string) string {
	switch unit {
	case "s":
		return formatDuration(int64(value))
	case "s/km":
		total := int64(value)
		return fmt.Sprintf("%d:%02d /km", total/60, total%60)
	default:
		return strconv.FormatFloat(value, 'f', -1, 64) + " " + unit
	}
}

func (c *Cli) runSummary(ctx context.Context, args []string) error {
	fs := newFlagSet("summary", c.io)
	asJSON := fs.Bool("json", false, "print JSON")
	rawPeriod := fs.String("period", "", "week, month, year or all")
	offset := fs.Int("offset", 0, "0 for the current period, -1 for the previous one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var period data.Period
	if *rawPeriod != "" {
		var err error
		if period, err = data.ParsePeriod(*rawPeriod); err != nil {
			return err
		}
	}
	if *offset > 0 {
		return errors.New("offset must be zero or negative")
	}

	if err := c.loadAll(ctx, *asJSON); err != nil {
		return err
	}

	if period != "" {
		ps := c.data.PeriodSummary(period, *offset)
		if *asJSON {
			return c.printJSON(api.SummaryResponse{
				Period:      &ps,
				Summary:     c.data.Summary(),
				Records:     c.data.Records(),
				Progression: c.data.Progression(),
				Partial:     !c.data.Complete(),
			})
		}
		return c.printPeriod(ps)
	}

	if *asJSON {
		return c.printJSON(api.SummaryResponse{
			Summary:     c.data.Summary(),
			Records:     c.data.Records(),
			Progression: c.data.Progression(),
			Partial:     !c.data.Complete(),
		})
	}

	s := c.data.Summary()
	c.io.Println("=== Summary ===")
	c.io.Println()
	c.io.Printf("Activities:  %d\n", s.Count)
	c.io.Printf("Distance:    %d km\n", s.DistanceKm)
	c.io.Printf("Elevation:   %d m\n", s.ElevationM)
	c.io.Printf("Moving time: %.1f h\n", s.MovingHours)

	months := c.data.Progression()
	if len(months) == 0 {
		return nil
	}

	c.io.Println()
	tw := c.newTable()
	_, _ = fmt.Fprintln(tw, "MONTH\tCOUNT\tKM\tRUN PACE")
	for _, m := range months {
		pace := "-"
		if m.RunMovingTime > 0 && m.RunDistance > 0 {
			pace = formatPace(m.RunDistance / float64(m.RunMovingTime))
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", m.Month, m.Count, m.DistanceKm, pace)
	}
	return tw.Flush()
}

func (c *Cli) printPeriod(ps models.PeriodSummary) error {
	title := ps.Period
	if ps.Start != "" {
		title = fmt.Sprintf("%s %s .. %s", ps.Period, ps.Start, ps.End)
	}
	if ps.Current {
		title += " (in progress)"
	}

	c.io.Printf("=== %s ===\n", title)
	c.io.Println()
	c.io.Printf("Activities:  %d%s\n", ps.Totals.Count, change(ps.Comparison, func(pc *models.PeriodComparison) int { return pc.Count }))
	c.io.Printf("Distance:    %d km%s\n", ps.Totals.DistanceKm, change(ps.Comparison, func(pc *models.PeriodComparison) int { return pc.Distance }))
	c.io.Printf("Elevation:   %d m%s\n", ps.Totals.ElevationM, change(ps.Comparison, func(pc *models.PeriodComparison) int { return pc.Elevation }))
	c.io.Printf("Moving time: %.1f h%s\n", ps.Totals.MovingHours, change(ps.Comparison, func(pc *models.PeriodComparison) int { return pc.MovingTime }))
	c.io.Printf("Average:     %.1f km%s\n", ps.AvgDistanceKm, change(ps.Comparison, func(pc *models.PeriodComparison) int { return pc.AvgDistance }))
	c.io.Printf("Per week:    %.1f\n", ps.PerWeek)

	if len(ps.Types) == 0 {
		return nil
	}

	c.io.Println()
	tw := c.newTable()
	_, _ = fmt.Fprintln(tw, "TYPE\tCOUNT")
	for _, t := range ps.Types {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", t.Type, t.Count)
	}
	return tw.Flush()
}

// change форматирует изменение к прошлому периоду: " (+12%)"
func change(pc *models.PeriodComparison, field func(*models.PeriodComparison) int) string {
	if pc == nil {
		return ""
	}
	return fmt.Sprintf(" (%+d%%)", field(pc))
}
