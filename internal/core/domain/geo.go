package domain

import (
	"fmt"
	"math"
)

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RDPoint is a point in the RD New (EPSG:28992) projected plane.
// Coordinates are in meters, so Euclidean distance is real distance.
type RDPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance to q in meters.
func (p RDPoint) DistanceTo(q RDPoint) float64 {
	return math.Sqrt(p.SquaredDistanceTo(q))
}

// SquaredDistanceTo returns the squared Euclidean distance to q.
func (p RDPoint) SquaredDistanceTo(q RDPoint) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return dx*dx + dy*dy
}

// BoundingBox is an axis-aligned rectangle in RD coordinates.
// Invariant: LowerLeft.X <= UpperRight.X and LowerLeft.Y <= UpperRight.Y.
type BoundingBox struct {
	LowerLeft  RDPoint `json:"lower_left"`
	UpperRight RDPoint `json:"upper_right"`
}

// SearchBox returns a square window of side 2*radiusMeters centered on center.
func SearchBox(center RDPoint, radiusMeters float64) (BoundingBox, error) {
	if radiusMeters <= 0 {
		return BoundingBox{}, fmt.Errorf("search radius must be positive, got %g", radiusMeters)
	}
	return BoundingBox{
		LowerLeft:  RDPoint{X: center.X - radiusMeters, Y: center.Y - radiusMeters},
		UpperRight: RDPoint{X: center.X + radiusMeters, Y: center.Y + radiusMeters},
	}, nil
}

// NearestOnSegment returns the point on segment [a,b] closest to p, using
// scalar projection onto the segment with the parameter clamped to [0,1].
// A zero-length segment has no direction; its first endpoint is returned.
func NearestOnSegment(a, b, p RDPoint) RDPoint {
	segLenSq := a.SquaredDistanceTo(b)
	if segLenSq == 0 {
		return a
	}

	segX, segY := b.X-a.X, b.Y-a.Y
	dot := segX*(p.X-a.X) + segY*(p.Y-a.Y)

	t := dot / segLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return RDPoint{X: a.X + t*segX, Y: a.Y + t*segY}
}
