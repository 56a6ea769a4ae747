package data

import (
	"github.com/iudanet/stravadash/internal/models"
	"github.com/iudanet/stravadash/internal/polyline"
)

// Route is the decoded summary route of one activity, in display order (lng, lat)
type Route struct {
	Activity models.ActivitySummary
	Points   []polyline.Coordinate
}

// Routes decodes the summary polylines of activities. Activities without a
// polyline are left out; malformed polylines are left out and counted in skipped.
func Routes(activities []models.ActivitySummary) (routes []Route, skipped int) {
	for _, a := range activities {
		if a.Map.SummaryPolyline == "" {
			continue
		}
		coords, err := polyline.Decode(a.Map.SummaryPolyline)
		if err != nil {
			skipped++
			continue
		}
		if len(coords) == 0 {
			continue
		}
		routes = append(routes, Route{Activity: a, Points: polyline.ToDisplayOrder(coords)})
	}
	return routes, skipped
}
