package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"straatradar/internal/core/domain"
	"straatradar/internal/pkg/metrics"
)

// Roughly the Netherlands, with some slack for border municipalities. The
// RD projection degrades quickly outside it.
const (
	minLat, maxLat = 50.5, 53.8
	minLon, maxLon = 3.0, 7.5
)

// NearbyStreetsHandler returns named streets within a radius of a point,
// sorted by the distance to their nearest geometry.
func NearbyStreetsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lon := c.QueryFloat("lon", 0)
		radius := c.QueryInt("radius", 200)

		if lat == 0 && lon == 0 {
			return errBadRequest(c, "lat and lon are required")
		}
		if lat < minLat || lat > maxLat || lon < minLon || lon > maxLon {
			return errBadRequest(c, "coordinate is outside the RD coverage area")
		}
		if radius <= 0 || radius > 5000 {
			return errBadRequest(c, "radius must be between 1 and 5000 meters")
		}

		start := time.Now()
		streets, err := deps.Streets.FindNearby(c.UserContext(), domain.GeoPoint{Lat: lat, Lon: lon}, radius)
		if err != nil {
			metrics.LookupsTotal.WithLabelValues("error").Inc()
			if errors.Is(err, domain.ErrTransport) || errors.Is(err, domain.ErrMalformedPage) {
				return errBadGateway(c, err.Error())
			}
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				return errBadGateway(c, err.Error())
			}
			return errInternal(c, err.Error())
		}
		metrics.LookupsTotal.WithLabelValues("ok").Inc()
		metrics.LookupDuration.Observe(time.Since(start).Seconds())
		metrics.StreetsReturned.Observe(float64(len(streets)))

		// Apply offset/limit pagination on the sorted list
		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 100
		}

		total := len(streets)
		if offset >= total {
			streets = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			streets = streets[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)

		// Results are live queries; nothing on our side may reuse them.
		c.Set("Cache-Control", "no-store")
		return c.JSON(PaginatedResponse{Data: streets, Pagination: pg})
	}
}
