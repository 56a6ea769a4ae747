package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/stravadash/internal/client/data"
	"github.com/iudanet/stravadash/internal/models"
	"github.com/iudanet/stravadash/pkg/api"
)

func (c *Cli) runAthlete(ctx context.Context) error {
	if err := c.data.LoadAthlete(ctx); err != nil {
		if c.data.Athlete() == nil {
			return err
		}
		c.warnStale(err)
	}

	a := c.data.Athlete()
	c.io.Printf("Name:      %s\n", a.FullName())
	c.io.Printf("ID:        %d\n", a.ID)
	location := strings.Join(nonEmpty(a.City, a.State, a.Country), ", ")
	if location != "" {
		c.io.Printf("Location:  %s\n", location)
	}
	if a.Weight > 0 {
		c.io.Printf("Weight:    %.1f kg\n", a.Weight)
	}
	if a.FTP > 0 {
		c.io.Printf("FTP:       %d W\n", a.FTP)
	}
	if a.CreatedAt != "" {
		c.io.Printf("Member:    since %s\n", startDay(a.CreatedAt))
	}
	if a.Premium {
		c.io.Println("Premium:   yes")
	}
	return nil
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c *Cli) runActivities(ctx context.Context, args []string) error {
	fs := newFlagSet("activities", c.io)
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 30, "activities per page")
	all := fs.Bool("all", false, "fetch every page")
	asJSON := fs.Bool("json", false, "print JSON")
	sport := fs.String("type", "", "only activities of this type, e.g. Run")
	from := fs.String("from", "", "first day, YYYY-MM-DD")
	to := fs.String("to", "", "last day, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *page < 1 || *perPage < 1 {
		return errors.New("page and per-page must be positive")
	}
	filter, err := data.ParseFilter(*sport, *from, *to)
	if err != nil {
		return err
	}

	if *all {
		err = c.data.LoadAllActivities(ctx)
	} else {
		err = c.data.LoadActivities(ctx, *page, *perPage)
	}

	loaded := c.data.Activities()
	if err != nil {
		if len(loaded) == 0 {
			return err
		}
		// в JSON-режиме предупреждение уже ушло в лог
		if !*asJSON {
			c.warnStale(err)
		}
	}

	activities := data.FilterActivities(loaded, filter)

	if *asJSON {
		resp := api.ActivitiesResponse{
			Activities: activities,
			Types:      data.ActivityTypes(loaded),
			Count:      len(activities),
		}
		if !*all {
			resp.Page, resp.PerPage = *page, *perPage
		}
		return c.printJSON(resp)
	}

	if len(activities) == 0 {
		c.io.Println("No activities found.")
		return nil
	}

	tw := c.newTable()
	_, _ = fmt.Fprintln(tw, "ID\tDATE\tTYPE\tNAME\tKM\tTIME\tPACE")
	for _, a := range activities {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, startDay(a.StartDate), a.Type, a.Name, formatKm(a.Distance), formatDuration(a.MovingTime), formatPace(a.AverageSpeed))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("%d activities\n", len(activities))
	return nil
}

func (c *Cli) runActivity(ctx context.Context, args []string) error {
	id, _, err := parseID("activity", args)
	if err != nil {
		return err
	}

	detail, stale, err := c.data.GetActivityDetail(ctx, id)
	if err != nil {
		return err
	}
	if stale {
		c.warnStale(c.data.Err())
	}

	c.io.Printf("=== %s ===\n", detail.Name)
	c.io.Println()
	c.io.Printf("ID:            %d\n", detail.ID)
	c.io.Printf("Type:          %s\n", detail.Type)
	c.io.Printf("Date:          %s\n", detail.StartDate)
	c.io.Printf("Distance:      %s km\n", formatKm(detail.Distance))
	c.io.Printf("Moving time:   %s\n", formatDuration(detail.MovingTime))
	c.io.Printf("Elapsed time:  %s\n", formatDuration(detail.ElapsedTime))
	c.io.Printf("Elevation:     %.0f m\n", detail.TotalElevationGain)
	c.io.Printf("Pace:          %s (%s)\n", formatPace(detail.AverageSpeed), formatSpeed(detail.AverageSpeed))
	if detail.HasHeartrate {
		c.io.Printf("Heart rate:    %.0f avg, %.0f max\n", detail.AverageHeartrate, detail.MaxHeartrate)
	}
	if detail.Calories > 0 {
		c.io.Printf("Calories:      %.0f\n", detail.Calories)
	}
	if detail.Gear != nil {
		c.io.Printf("Gear:          %s\n", detail.Gear.Name)
	}
	if detail.DeviceName != "" {
		c.io.Printf("Device:        %s\n", detail.DeviceName)
	}
	if detail.Description != "" {
		c.io.Println()
		c.io.Println(detail.Description)
	}

	if len(detail.SplitsMetric) > 0 {
		c.io.Println()
		tw := c.newTable()
		_, _ = fmt.Fprintln(tw, "KM\tTIME\tPACE\tELEV")
		for _, s := range detail.SplitsMetric {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%+.0f\n", s.Split, formatDuration(s.MovingTime), formatPace(s.AverageSpeed), s.ElevationDifference)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cli) runLaps(ctx context.Context, args []string) error {
	id, _, err := parseID("laps", args)
	if err != nil {
		return err
	}

	laps, err := c.data.ActivityLaps(ctx, id)
	if err != nil {
		return err
	}
	if len(laps) == 0 {
		c.io.Println("No laps recorded.")
		return nil
	}

	tw := c.newTable()
	_, _ = fmt.Fprintln(tw, "LAP\tKM\tTIME\tPACE\tELEV\tHR")
	for _, l := range laps {
		hr := "-"
		if l.AverageHeartrate > 0 {
			hr = fmt.Sprintf("%.0f", l.AverageHeartrate)
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.0f\t%s\n",
			l.LapIndex, formatKm(l.Distance), formatDuration(l.MovingTime), formatPace(l.AverageSpeed), l.TotalElevationGain, hr)
	}
	return tw.Flush()
}

func (c *Cli) runStreams(ctx context.Context, args []string) error {
	id, rest, err := parseID("streams", args)
	if err != nil {
		return err
	}

	fs := newFlagSet("streams", c.io)
	keys := fs.String("keys", "", "comma separated stream types (default: time,distance,latlng,altitude,heartrate)")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	var requested []string
	if *keys != "" {
		requested = strings.Split(*keys, ",")
	}

	streams, err := c.data.ActivityStreams(ctx, id, requested...)
	if err != nil {
		return err
	}

	tw := c.newTable()
	_, _ = fmt.Fprintln(tw, "TYPE\tSERIES\tRESOLUTION\tPOINTS")
	for _, s := range streams {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.Type, s.SeriesType, s.Resolution, streamLen(s))
	}
	return tw.Flush()
}

// streamLen returns the number of samples in the stream
func streamLen(s models.ActivityStream) int {
	var samples []json.RawMessage
	if err := json.Unmarshal(s.Data, &samples); err != nil {
		return s.OriginalSize
	}
	return len(samples)
}

func (c *Cli) runStats(ctx context.Context) error {
	if err := c.data.LoadStats(ctx); err != nil {
		if c.data.Stats() == nil {
			return err
		}
		c.warnStale(err)
	}

	stats := c.data.Stats()

	tw := c.newTable()
	_, _ = fmt.Fprintln(tw, "PERIOD\tSPORT\tCOUNT\tKM\tTIME\tELEV")
	rows := []struct {
		period string
		sport  string
		totals models.ActivityTotals
	}{
		{"recent", "run", stats.RecentRunTotals},
		{"recent", "ride", stats.RecentRideTotals},
		{"recent", "swim", stats.RecentSwimTotals},
		{"ytd", "run", stats.YTDRunTotals},
		{"ytd", "ride", stats.YTDRideTotals},
		{"ytd", "swim", stats.YTDSwimTotals},
		{"all", "run", stats.AllRunTotals},
		{"all", "ride", stats.AllRideTotals},
		{"all", "swim", stats.AllSwimTotals},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%.0f\n",
			r.period, r.sport, r.totals.Count, formatKm(r.totals.Distance), formatDuration(r.totals.MovingTime), r.totals.ElevationGain)
	}
	return tw.Flush()
}
