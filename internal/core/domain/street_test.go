package domain_test

import (
	"errors"
	"testing"

	"straatradar/internal/core/domain"
)

func validVertices() []domain.RDPoint {
	return []domain.RDPoint{{X: 0, Y: 0}, {X: 10, Y: 0}}
}

func TestNewFragment_Valid(t *testing.T) {
	f, err := domain.NewFragment("  Kalverstraat ", "Amsterdam", "Amsterdam", validVertices())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID.Street != "Kalverstraat" {
		t.Errorf("expected trimmed street name, got %q", f.ID.Street)
	}
}

func TestNewFragment_Invalid(t *testing.T) {
	cases := []struct {
		name                        string
		street, place, municipality string
		vertices                    []domain.RDPoint
	}{
		{"blank street", "  ", "Amsterdam", "Amsterdam", validVertices()},
		{"blank place", "Kalverstraat", "", "Amsterdam", validVertices()},
		{"blank municipality", "Kalverstraat", "Amsterdam", "\t", validVertices()},
		{"empty vertices", "Kalverstraat", "Amsterdam", "Amsterdam", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := domain.NewFragment(tc.street, tc.place, tc.municipality, tc.vertices)
			if f != nil {
				t.Error("expected no fragment to be created")
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected *ValidationError, got %v", err)
			}
		})
	}
}

func TestFragment_NearestTo_SingleVertex(t *testing.T) {
	f, err := domain.NewFragment("A", "B", "C", []domain.RDPoint{{X: 3, Y: 4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A one-vertex polyline has no segments; the vertex always wins.
	for _, here := range []domain.RDPoint{{X: 0, Y: 0}, {X: 100, Y: -50}, {X: 3, Y: 4}} {
		if got := f.NearestTo(here); got != (domain.RDPoint{X: 3, Y: 4}) {
			t.Errorf("query %+v: expected (3,4), got %+v", here, got)
		}
	}
}

func TestFragment_NearestTo_PicksClosestSegment(t *testing.T) {
	// An L-shaped fragment: the second leg passes much closer to the query.
	f, err := domain.NewFragment("A", "B", "C", []domain.RDPoint{
		{X: 0, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := f.NearestTo(domain.RDPoint{X: 150, Y: 50})
	if got.X != 100 || got.Y != 50 {
		t.Errorf("expected (100,50), got (%g,%g)", got.X, got.Y)
	}
}

func TestStreetID_Comparable(t *testing.T) {
	a := domain.StreetID{Street: "Main St", Place: "Townsville", Municipality: "Bigcity"}
	b := domain.StreetID{Street: "Main St", Place: "Townsville", Municipality: "Bigcity"}
	c := domain.StreetID{Street: "Main St", Place: "Townsville", Municipality: "Smallcity"}

	if a != b {
		t.Error("identical identities must compare equal")
	}
	if a == c {
		t.Error("differing municipality must compare unequal")
	}

	// Usable as a map key
	m := map[domain.StreetID]int{a: 1}
	if m[b] != 1 {
		t.Error("map lookup by structural equality failed")
	}
}
