package wfs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"straatradar/internal/core/domain"
	"straatradar/internal/pkg/metrics"
)

var tracer = otel.Tracer("straatradar/wfs")

// Config holds the service-specific knowledge the client needs.
type Config struct {
	BaseURL        string        // public WFS endpoint, e.g. https://geodata.nationaalgeoregister.nl/nwbwegen/wfs
	TypeName       string        // feature type, e.g. nwbwegen:wegvakken
	PageSize       int           // server-side count per page
	RequestTimeout time.Duration // per-page HTTP timeout
	RewriteFrom    string        // next-link prefix to replace
	RewriteTo      string        // replacement path
}

// Client implements ports.FragmentSource against a WFS 2.0 endpoint.
type Client struct {
	http    *http.Client
	cfg     Config
	parser  PageParser
	rewrite LinkRewriter
}

// NewClient creates a WFS client for the NWB road layer.
func NewClient(cfg Config) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 200
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		cfg:     cfg,
		parser:  NWBParser{},
		rewrite: PathRewriter{From: cfg.RewriteFrom, To: cfg.RewriteTo},
	}
}

// FragmentsWithin pages through every feature intersecting box and parses
// each one into a Fragment. Any fetch, parse, or validation failure aborts
// the whole retrieval.
func (c *Client) FragmentsWithin(ctx context.Context, box domain.BoundingBox) ([]domain.Fragment, error) {
	ctx, span := tracer.Start(ctx, "wfs.FragmentsWithin")
	defer span.End()

	members, err := FetchAll(ctx, c, c.parser, c.rewrite, c.queryURL(box))
	if err != nil {
		return nil, err
	}

	fragments := make([]domain.Fragment, 0, len(members))
	for _, m := range members {
		f, err := ParseFragment(m)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, *f)
	}

	metrics.FragmentsParsed.Add(float64(len(fragments)))
	span.SetAttributes(attribute.Int("wfs.fragments", len(fragments)))
	return fragments, nil
}

// Fetch performs one page request. No retries: a lookup is a single
// synchronous user-facing query, and a transient upstream failure fails it.
func (c *Client) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "wfs.Fetch")
	defer span.End()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrTransport, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.WFSFetchErrors.WithLabelValues("network").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.WFSFetchErrors.WithLabelValues("status").Inc()
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.WFSFetchErrors.WithLabelValues("body").Inc()
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrTransport, err)
	}

	metrics.WFSPagesFetched.Inc()
	metrics.WFSPageDuration.Observe(time.Since(start).Seconds())
	return body, nil
}

// Ping checks that the endpoint answers a GetCapabilities request. Used by
// the readiness probe only.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("SERVICE", "WFS")
	q.Set("REQUEST", "GetCapabilities")
	_, err := c.Fetch(ctx, c.cfg.BaseURL+"?"+q.Encode())
	return err
}

// queryURL builds the initial GetFeature request for a bounding box.
func (c *Client) queryURL(box domain.BoundingBox) string {
	q := url.Values{}
	q.Set("SERVICE", "WFS")
	q.Set("VERSION", "2.0.0")
	q.Set("REQUEST", "GetFeature")
	q.Set("typenames", c.cfg.TypeName)
	q.Set("propertyname", "stt_naam,gme_naam,wpsnaamnen,geom")
	q.Set("count", strconv.Itoa(c.cfg.PageSize))
	q.Set("bbox", fmt.Sprintf("%g,%g,%g,%g",
		box.LowerLeft.X, box.LowerLeft.Y, box.UpperRight.X, box.UpperRight.Y))
	return c.cfg.BaseURL + "?" + q.Encode()
}
