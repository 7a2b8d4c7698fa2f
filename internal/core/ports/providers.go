package ports

import (
	"context"

	"straatradar/internal/core/domain"
)

// Transform converts between WGS 84 and the RD projected frame. The two
// directions must be approximately inverse: round-tripping a point inside
// the Netherlands should land within a meter of where it started.
type Transform interface {
	ToProjected(p domain.GeoPoint) domain.RDPoint
	ToGeographic(p domain.RDPoint) domain.GeoPoint
}

// FragmentSource retrieves all street fragments intersecting a bounding box.
// Implementations page through the upstream service sequentially and fail
// the whole call on the first transport, parse, or validation error.
type FragmentSource interface {
	FragmentsWithin(ctx context.Context, box domain.BoundingBox) ([]domain.Fragment, error)
}

// EventPublisher publishes lookup events to a message broker.
type EventPublisher interface {
	PublishLookup(ctx context.Context, ev *domain.LookupEvent) error
}
