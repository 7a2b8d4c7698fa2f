package domain

import (
	"math"
	"strings"
	"time"
)

// StreetID identifies one logical street. Two fragments belong to the same
// street iff all three fields are equal, so the type must stay comparable:
// it is used directly as a map key when fragments are grouped.
type StreetID struct {
	Street       string `json:"street"`
	Place        string `json:"place"`
	Municipality string `json:"municipality"`
}

// Fragment is one contiguous piece of a street's centerline, as returned by
// a single upstream feature record. Vertices are RD coordinates in order.
// Construct via NewFragment; a Fragment always has at least one vertex.
type Fragment struct {
	ID       StreetID
	Vertices []RDPoint
}

// NewFragment validates and builds a Fragment. Identity fields are trimmed;
// a blank field or an empty vertex slice is a *ValidationError.
func NewFragment(street, place, municipality string, vertices []RDPoint) (*Fragment, error) {
	street = strings.TrimSpace(street)
	place = strings.TrimSpace(place)
	municipality = strings.TrimSpace(municipality)

	switch {
	case street == "":
		return nil, &ValidationError{Field: "street", Reason: "must not be blank"}
	case place == "":
		return nil, &ValidationError{Field: "place", Reason: "must not be blank"}
	case municipality == "":
		return nil, &ValidationError{Field: "municipality", Reason: "must not be blank"}
	case len(vertices) == 0:
		return nil, &ValidationError{Field: "vertices", Reason: "must not be empty"}
	}

	return &Fragment{
		ID:       StreetID{Street: street, Place: place, Municipality: municipality},
		Vertices: vertices,
	}, nil
}

// NearestTo returns the point on this fragment's polyline closest to here.
// A single-vertex fragment has no segments; that vertex is the answer.
func (f *Fragment) NearestTo(here RDPoint) RDPoint {
	if len(f.Vertices) == 1 {
		return f.Vertices[0]
	}

	best := f.Vertices[0]
	bestDistSq := math.Inf(1)
	for i := 1; i < len(f.Vertices); i++ {
		candidate := NearestOnSegment(f.Vertices[i-1], f.Vertices[i], here)
		if d := here.SquaredDistanceTo(candidate); d < bestDistSq {
			bestDistSq = d
			best = candidate
		}
	}
	return best
}

// Street is one aggregated lookup result: the identity of a street plus the
// single closest point among all of its fragments.
type Street struct {
	StreetID
	NearestPoint   GeoPoint `json:"nearest_point"`
	DistanceMeters int      `json:"distance_meters"`
}

// LookupEvent describes one completed street lookup, for usage analytics.
type LookupEvent struct {
	Time         time.Time `json:"time"`
	Origin       GeoPoint  `json:"origin"`
	RadiusMeters int       `json:"radius_meters"`
	Streets      int       `json:"streets"`
	DurationMS   int64     `json:"duration_ms"`
}
