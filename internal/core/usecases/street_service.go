package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"straatradar/internal/core/domain"
	"straatradar/internal/core/ports"
)

// StreetService answers "which named streets lie within a radius of this
// coordinate, and how far is each one?".
type StreetService struct {
	source    ports.FragmentSource
	transform ports.Transform
	events    ports.EventPublisher
}

// NewStreetService creates a new StreetService. events may be nil.
func NewStreetService(source ports.FragmentSource, transform ports.Transform, events ports.EventPublisher) *StreetService {
	return &StreetService{source: source, transform: transform, events: events}
}

// FindNearby returns all streets with geometry inside the search window,
// sorted ascending by the distance from origin to their nearest point.
func (s *StreetService) FindNearby(ctx context.Context, origin domain.GeoPoint, radiusMeters int) ([]domain.Street, error) {
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %d", radiusMeters)
	}

	start := time.Now()

	here := s.transform.ToProjected(origin)
	box, err := domain.SearchBox(here, float64(radiusMeters))
	if err != nil {
		return nil, err
	}

	fragments, err := s.source.FragmentsWithin(ctx, box)
	if err != nil {
		return nil, fmt.Errorf("fetch fragments: %w", err)
	}

	streets := s.aggregate(fragments, here)

	s.publishLookup(ctx, &domain.LookupEvent{
		Time:         start,
		Origin:       origin,
		RadiusMeters: radiusMeters,
		Streets:      len(streets),
		DurationMS:   time.Since(start).Milliseconds(),
	})

	return streets, nil
}

// aggregate collects fragments into logical streets, picks the closest point
// per street, and sorts by distance. An empty input yields an empty result.
func (s *StreetService) aggregate(fragments []domain.Fragment, here domain.RDPoint) []domain.Street {
	// Group by street identity. Map iteration order is random, so keep the
	// first-seen key order next to the map for a deterministic result.
	groups := make(map[domain.StreetID][]domain.Fragment, len(fragments))
	order := make([]domain.StreetID, 0, len(fragments))
	for _, f := range fragments {
		if _, seen := groups[f.ID]; !seen {
			order = append(order, f.ID)
		}
		groups[f.ID] = append(groups[f.ID], f)
	}

	streets := make([]domain.Street, 0, len(order))
	for _, id := range order {
		var nearest domain.RDPoint
		bestDist := math.Inf(1)
		for _, f := range groups[id] {
			candidate := f.NearestTo(here)
			if d := here.DistanceTo(candidate); d < bestDist {
				bestDist = d
				nearest = candidate
			}
		}

		streets = append(streets, domain.Street{
			StreetID:       id,
			NearestPoint:   s.transform.ToGeographic(nearest),
			DistanceMeters: roundHalfUp(bestDist),
		})
	}

	// Distance first; ties broken alphabetically so the order is stable
	// across runs regardless of how the upstream pages arrived.
	sort.Slice(streets, func(i, j int) bool {
		a, b := streets[i], streets[j]
		if a.DistanceMeters != b.DistanceMeters {
			return a.DistanceMeters < b.DistanceMeters
		}
		if a.Street != b.Street {
			return a.Street < b.Street
		}
		if a.Place != b.Place {
			return a.Place < b.Place
		}
		return a.Municipality < b.Municipality
	})

	return streets
}

// publishLookup emits a usage event. Best effort: a broker failure must
// never fail a lookup that already succeeded.
func (s *StreetService) publishLookup(ctx context.Context, ev *domain.LookupEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLookup(ctx, ev); err != nil {
		slog.Warn("publish lookup event", "error", err)
	}
}

// roundHalfUp rounds to the nearest integer meter, halves up (12.5 -> 13).
func roundHalfUp(d float64) int {
	return int(math.Floor(d + 0.5))
}
