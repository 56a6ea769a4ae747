package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/stravadash/internal/client/data"
	"github.com/iudanet/stravadash/internal/export"
	"github.com/iudanet/stravadash/internal/models"
	"github.com/iudanet/stravadash/pkg/api"
)

func (c *Cli) runRoute(ctx context.Context, args []string) error {
	id, rest, err := parseID("route", args)
	if err != nil {
		return err
	}

	fs := newFlagSet("route", c.io)
	detailed := fs.Bool("detailed", false, "use the full resolution polyline")
	format := fs.String("format", "geojson", "output format: geojson or gpx")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if *format != "geojson" && *format != "gpx" {
		return fmt.Errorf("unknown format %q, use geojson or gpx", *format)
	}

	// stdout занят GeoJSON/GPX: о кэшированном маршруте сообщают лог и свойство stale
	route, stale, err := c.data.ActivityRoute(ctx, id, *detailed)
	if err != nil {
		return err
	}

	activity := c.findActivity(id)

	if *format == "gpx" {
		track := export.Track{Points: route}
		if activity != nil {
			track.Name = activity.Name
			track.Type = activity.Type
			track.Start, _ = time.Parse(time.RFC3339, activity.StartDate)
		}
		return export.WriteGPX(c.io, track)
	}

	var name string
	if activity != nil {
		name = activity.Name
	}
	feature := api.NewRouteFeature(id, name, route, *detailed)
	feature.Properties.Stale = stale
	return c.printJSON(feature)
}

func (c *Cli) runRoutes(ctx context.Context, args []string) error {
	fs := newFlagSet("routes", c.io)
	sport := fs.String("type", "", "activity type, e.g. Run")
	from := fs.String("from", "", "first day, YYYY-MM-DD")
	to := fs.String("to", "", "last day, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter, err := data.ParseFilter(*sport, *from, *to)
	if err != nil {
		return err
	}

	if err := c.loadAll(ctx, true); err != nil {
		return err
	}

	routes := c.data.AllRoutes(filter)
	features := make([]api.RouteFeature, 0, len(routes))
	for _, r := range routes {
		features = append(features, api.NewActivityFeature(r.Activity, r.Points))
	}
	return c.printJSON(api.NewFeatureCollection(features))
}

// findActivity looks the activity up among the loaded ones
func (c *Cli) findActivity(id int64) *models.ActivitySummary {
	for _, a := range c.data.Activities() {
		if a.ID == id {
			return &a
		}
	}
	return nil
}
