// Package polyline decodes Google encoded polylines as returned by Strava
// (map.summary_polyline, map.polyline) into coordinate sequences.
//
// Формат: https://developers.google.com/maps/documentation/utilities/polylinealgorithm
package polyline

import (
	gopolyline "github.com/twpayne/go-polyline"
)

const (
	// precision множитель координат в формате Google (1e5)
	precision = 1e5

	// charOffset is added to every 5-bit chunk to keep it printable
	charOffset = 63

	chunkMask        = 0x1f
	continuationFlag = 0x20

	// maxShift is the shift of the last allowed chunk: a scalar takes at most
	// 7 chunks (35 bits), the 8th is rejected
	maxShift = 30
)

// Coordinate is a pair of degrees. Decode returns [latitude, longitude];
// ToDisplayOrder turns it into [longitude, latitude].
type Coordinate [2]float64

// Decode converts an encoded polyline into [lat, lng] coordinates.
// An empty string yields an empty slice. Malformed input returns *DecodeError.
func Decode(encoded string) ([]Coordinate, error) {
	points := make([]Coordinate, 0, len(encoded)/4)

	var lat, lng int64
	index := 0

	for index < len(encoded) {
		deltaLat, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		lat += deltaLat
		index = next

		deltaLng, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		lng += deltaLng
		index = next

		points = append(points, Coordinate{float64(lat) / precision, float64(lng) / precision})
	}

	return points, nil
}

// decodeValue reads one zig-zag encoded delta starting at index and
// returns it together with the position of the next unread character.
func decodeValue(encoded string, index int) (int64, int, error) {
	var result int64
	shift := 0
	start := index

	for {
		if index >= len(encoded) {
			return 0, index, &DecodeError{Offset: start, Reason: "unexpected end of input inside a chunk"}
		}
		if shift > maxShift {
			return 0, index, &DecodeError{Offset: start, Reason: "chunk sequence never terminates"}
		}

		b := int64(encoded[index]) - charOffset
		if b < 0 || b > 0x3f {
			return 0, index, &DecodeError{Offset: index, Reason: "character out of range"}
		}
		index++

		result |= (b & chunkMask) << shift
		shift += 5

		if b&continuationFlag == 0 {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

// ToDisplayOrder swaps every [lat, lng] into [lng, lat], the order GeoJSON
// and map renderers expect. The input slice is left untouched.
func ToDisplayOrder(coords []Coordinate) []Coordinate {
	out := make([]Coordinate, len(coords))
	for i, c := range coords {
		out[i] = Coordinate{c[1], c[0]}
	}
	return out
}

// Encode converts [lat, lng] coordinates back into an encoded polyline.
func Encode(coords []Coordinate) string {
	raw := make([][]float64, len(coords))
	for i, c := range coords {
		raw[i] = []float64{c[0], c[1]}
	}
	return string(gopolyline.EncodeCoords(raw))
}

// BoundingBox is the [min, max] extent of a route in source order.
type BoundingBox struct {
	Min Coordinate `json:"min"`
	Max Coordinate `json:"max"`
}

// Bounds returns the bounding box of coords. ok is false for an empty route.
func Bounds(coords []Coordinate) (box BoundingBox, ok bool) {
	if len(coords) == 0 {
		return box, false
	}

	box.Min, box.Max = coords[0], coords[0]
	for _, c := range coords[1:] {
		for axis := 0; axis < 2; axis++ {
			if c[axis] < box.Min[axis] {
				box.Min[axis] = c[axis]
			}
			if c[axis] > box.Max[axis] {
				box.Max[axis] = c[axis]
			}
		}
	}
	return box, true
}
