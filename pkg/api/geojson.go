package api

import (
	"github.com/iudanet/stravadash/internal/models"
	"github.com/iudanet/stravadash/internal/polyline"
)

// LineString is a GeoJSON geometry; coordinates are [lng, lat]
type LineString struct {
	Type        string                `json:"type"`
	Coordinates []polyline.Coordinate `json:"coordinates"`
}

// RouteProperties describes the activity a route belongs to
type RouteProperties struct {
	Name       string `json:"name,omitempty"`
	Type       string `json:"type,omitempty"`       // тип активности: Run, Ride, ...
	StartDate  string `json:"start_date,omitempty"` // ISO 8601
	ActivityID int64  `json:"activity_id"`
	Points     int    `json:"points"`
	Detailed   bool   `json:"detailed"`
	Stale      bool   `json:"stale,omitempty"` // маршрут из кэша, API недоступен
}

// RouteFeature is a GeoJSON Feature wrapping an activity route
type RouteFeature struct {
	Type       string          `json:"type"`
	BBox       []float64       `json:"bbox,omitempty"` // [minLng, minLat, maxLng, maxLat]
	Geometry   LineString      `json:"geometry"`
	Properties RouteProperties `json:"properties"`
}

// NewRouteFeature builds a Feature from a route already in display order.
// An empty route produces a feature without bbox and with an empty coordinate list.
func NewRouteFeature(activityID int64, name string, route []polyline.Coordinate, detailed bool) RouteFeature {
	if route == nil {
		route = []polyline.Coordinate{}
	}

	feature := RouteFeature{
		Type: "Feature",
		Geometry: LineString{
			Type:        "LineString",
			Coordinates: route,
		},
		Properties: RouteProperties{
			Name:       name,
			ActivityID: activityID,
			Points:     len(route),
			Detailed:   detailed,
		},
	}

	if box, ok := polyline.Bounds(route); ok {
		feature.BBox = []float64{box.Min[0], box.Min[1], box.Max[0], box.Max[1]}
	}
	return feature
}

// NewActivityFeature builds the summary route Feature of a loaded activity
func NewActivityFeature(a models.ActivitySummary, route []polyline.Coordinate) RouteFeature {
	feature := NewRouteFeature(a.ID, a.Name, route, false)
	feature.Properties.Type = a.Type
	feature.Properties.StartDate = a.StartDate
	return feature
}

// FeatureCollection is a GeoJSON FeatureCollection of activity routes
type FeatureCollection struct {
	Type     string         `json:"type"`
	BBox     []float64      `json:"bbox,omitempty"` // охватывает все маршруты
	Features []RouteFeature `json:"features"`
}

// NewFeatureCollection wraps features; the bbox is the union of the feature bboxes
func NewFeatureCollection(features []RouteFeature) FeatureCollection {
	if features == nil {
		features = []RouteFeature{}
	}

	collection := FeatureCollection{Type: "FeatureCollection", Features: features}
	for _, f := range features {
		if len(f.BBox) != 4 {
			continue
		}
		if collection.BBox == nil {
			collection.BBox = append([]float64(nil), f.BBox...)
			continue
		}
		collection.BBox[0] = min(collection.BBox[0], f.BBox[0])
		collection.BBox[1] = min(collection.BBox[1], f.BBox[1])
		collection.BBox[2] = max(collection.BBox[2], f.BBox[2])
		collection.BBox[3] = max(collection.BBox[3], f.BBox[3])
	}
	return collection
}
