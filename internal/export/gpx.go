// Package export converts activity routes into files other tools can open.
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/iudanet/stravadash/internal/polyline"
)

const (
	gpxNamespace = "http://www.topografix.com/GPX/1/1"
	gpxCreator   = "stravadash"
)

// Track is a single activity route.
// Points are in display order [lng, lat], as returned by data.Service.ActivityRoute.
type Track struct {
	Start  time.Time
	Name   string
	Type   string // тип активности Strava (Run, Ride, ...)
	Points []polyline.Coordinate
}

// WriteGPX writes t as a GPX 1.1 document with one track and one segment.
// Polylines carry no timestamps or elevation, so track points have lat/lon only.
func WriteGPX(w io.Writer, t Track) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	gpx := doc.CreateElement("gpx")
	gpx.CreateAttr("version", "1.1")
	gpx.CreateAttr("creator", gpxCreator)
	gpx.CreateAttr("xmlns", gpxNamespace)

	meta := gpx.CreateElement("metadata")
	if t.Name != "" {
		meta.CreateElement("name").SetText(t.Name)
	}
	if !t.Start.IsZero() {
		meta.CreateElement("time").SetText(t.Start.UTC().Format(time.RFC3339))
	}

	trk := gpx.CreateElement("trk")
	if t.Name != "" {
		trk.CreateElement("name").SetText(t.Name)
	}
	if t.Type != "" {
		trk.CreateElement("type").SetText(t.Type)
	}

	seg := trk.CreateElement("trkseg")
	for _, p := range t.Points {
		pt := seg.CreateElement("trkpt")
		pt.CreateAttr("lat", formatDegrees(p[1]))
		pt.CreateAttr("lon", formatDegrees(p[0]))
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write gpx: %w", err)
	}
	return nil
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
