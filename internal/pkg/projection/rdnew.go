// Package projection converts between WGS 84 and the Dutch RD New
// (EPSG:28992) planar coordinate system, using the approximation
// polynomials published by Schreutelkamp and Strang van Hees. Accuracy is
// around half a meter anywhere in the Netherlands, which is plenty for
// street-level distance reporting.
package projection

import "straatradar/internal/core/domain"

// Amersfoort (Onze Lieve Vrouwetoren), the RD datum point.
const (
	baseX   = 155000.0
	baseY   = 463000.0
	baseLat = 52.15517440
	baseLon = 5.38720621
)

type term struct {
	p, q int
	c    float64
}

// WGS 84 -> RD, pseudo-degrees in, meters out.
var (
	xTerms = []term{
		{0, 1, 190094.945}, {1, 1, -11832.228}, {2, 1, -114.221},
		{0, 3, -32.391}, {1, 0, -0.705}, {3, 1, -2.340},
		{1, 3, -0.608}, {0, 2, -0.008}, {2, 3, 0.148},
	}
	yTerms = []term{
		{1, 0, 309056.544}, {0, 2, 3638.893}, {2, 0, 73.077},
		{1, 2, -157.984}, {3, 0, 59.788}, {0, 1, 0.433},
		{2, 2, -6.439}, {1, 1, -0.032}, {0, 4, 0.092}, {1, 4, -0.054},
	}
)

// RD -> WGS 84, decameters in, arc-seconds out.
var (
	latTerms = []term{
		{0, 1, 3235.65389}, {2, 0, -32.58297}, {0, 2, -0.24750},
		{2, 1, -0.84978}, {0, 3, -0.06550}, {2, 2, -0.01709},
		{1, 0, -0.00738}, {4, 0, 0.00530}, {2, 3, -0.00039},
		{4, 1, 0.00033}, {1, 1, -0.00012},
	}
	lonTerms = []term{
		{1, 0, 5260.52916}, {1, 1, 105.94684}, {1, 2, 2.45656},
		{3, 0, -0.81885}, {1, 3, 0.05594}, {3, 1, -0.05607},
		{0, 1, 0.01199}, {3, 2, -0.00256}, {1, 4, 0.00128},
		{0, 2, 0.00022}, {2, 0, -0.00022}, {5, 0, 0.00026},
	}
)

func evaluate(terms []term, u, v float64) float64 {
	var sum float64
	for _, t := range terms {
		f := t.c
		for i := 0; i < t.p; i++ {
			f *= u
		}
		for i := 0; i < t.q; i++ {
			f *= v
		}
		sum += f
	}
	return sum
}

// RDNew implements ports.Transform.
type RDNew struct{}

// ToProjected converts a WGS 84 coordinate to RD New meters.
func (RDNew) ToProjected(p domain.GeoPoint) domain.RDPoint {
	dLat := 0.36 * (p.Lat - baseLat)
	dLon := 0.36 * (p.Lon - baseLon)
	return domain.RDPoint{
		X: baseX + evaluate(xTerms, dLat, dLon),
		Y: baseY + evaluate(yTerms, dLat, dLon),
	}
}

// ToGeographic converts an RD New point back to WGS 84 degrees.
func (RDNew) ToGeographic(p domain.RDPoint) domain.GeoPoint {
	dx := (p.X - baseX) * 1e-5
	dy := (p.Y - baseY) * 1e-5
	return domain.GeoPoint{
		Lat: baseLat + evaluate(latTerms, dx, dy)/3600,
		Lon: baseLon + evaluate(lonTerms, dx, dy)/3600,
	}
}
