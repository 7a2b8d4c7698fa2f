package http

import (
	"github.com/nats-io/nats.go"

	"straatradar/internal/adapters/wfs"
	"straatradar/internal/core/usecases"
)

// Dependencies holds everything the HTTP handlers need.
type Dependencies struct {
	Streets *usecases.StreetService
	WFS     *wfs.Client // for readiness probing; nil in tests
	NATS    *nats.Conn
}
