package domain_test

import (
	"math"
	"testing"

	"straatradar/internal/core/domain"
)

func TestNearestOnSegment_Projection(t *testing.T) {
	a := domain.RDPoint{X: 0, Y: 0}
	b := domain.RDPoint{X: 10, Y: 0}

	got := domain.NearestOnSegment(a, b, domain.RDPoint{X: 5, Y: 5})
	if got.X != 5 || got.Y != 0 {
		t.Errorf("expected (5,0), got (%g,%g)", got.X, got.Y)
	}
	if d := got.DistanceTo(domain.RDPoint{X: 5, Y: 5}); d != 5 {
		t.Errorf("expected distance 5, got %g", d)
	}
}

func TestNearestOnSegment_ClampsToEndpoint(t *testing.T) {
	a := domain.RDPoint{X: 0, Y: 0}
	b := domain.RDPoint{X: 10, Y: 0}
	here := domain.RDPoint{X: 15, Y: 10}

	got := domain.NearestOnSegment(a, b, here)
	if got.X != 10 || got.Y != 0 {
		t.Errorf("expected clamp to (10,0), got (%g,%g)", got.X, got.Y)
	}
	// (15,10) to (10,0): sqrt(5*5 + 10*10)
	want := math.Sqrt(125)
	if d := here.DistanceTo(got); math.Abs(d-want) > 1e-9 {
		t.Errorf("expected distance sqrt(125)=%g, got %g", want, d)
	}
}

func TestNearestOnSegment_BeforeStartClampsToStart(t *testing.T) {
	a := domain.RDPoint{X: 0, Y: 0}
	b := domain.RDPoint{X: 10, Y: 0}

	got := domain.NearestOnSegment(a, b, domain.RDPoint{X: -3, Y: 4})
	if got != a {
		t.Errorf("expected clamp to start point, got (%g,%g)", got.X, got.Y)
	}
}

func TestNearestOnSegment_ZeroLength(t *testing.T) {
	p := domain.RDPoint{X: 3, Y: 4}

	// Coincident endpoints must not divide by zero.
	got := domain.NearestOnSegment(p, p, domain.RDPoint{X: 100, Y: 100})
	if got != p {
		t.Errorf("expected the shared endpoint, got (%g,%g)", got.X, got.Y)
	}
}

func TestSearchBox(t *testing.T) {
	box, err := domain.SearchBox(domain.RDPoint{X: 1000, Y: 2000}, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if box.LowerLeft.X != 850 || box.LowerLeft.Y != 1850 {
		t.Errorf("wrong lower left: %+v", box.LowerLeft)
	}
	if box.UpperRight.X != 1150 || box.UpperRight.Y != 2150 {
		t.Errorf("wrong upper right: %+v", box.UpperRight)
	}
	if box.LowerLeft.X > box.UpperRight.X || box.LowerLeft.Y > box.UpperRight.Y {
		t.Error("bounding box invariant violated")
	}
}

func TestSearchBox_RejectsNonPositiveRadius(t *testing.T) {
	for _, r := range []float64{0, -1} {
		if _, err := domain.SearchBox(domain.RDPoint{}, r); err == nil {
			t.Errorf("expected error for radius %g", r)
		}
	}
}

func TestRDPoint_Distance(t *testing.T) {
	a := domain.RDPoint{X: 0, Y: 0}
	b := domain.RDPoint{X: 3, Y: 4}
	if d := a.DistanceTo(b); d != 5 {
		t.Errorf("expected 5, got %g", d)
	}
	if d := a.SquaredDistanceTo(b); d != 25 {
		t.Errorf("expected 25, got %g", d)
	}
}
