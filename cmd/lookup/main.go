// Command lookup runs a single nearby-street query against the NWB WFS and
// prints the sorted result table. Useful for smoke testing a deployment
// without the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"straatradar/internal/adapters/wfs"
	"straatradar/internal/core/domain"
	"straatradar/internal/core/usecases"
	"straatradar/internal/pkg/config"
	"straatradar/internal/pkg/logging"
	"straatradar/internal/pkg/projection"
)

func main() {
	lat := flag.Float64("lat", 0, "latitude (WGS 84)")
	lon := flag.Float64("lon", 0, "longitude (WGS 84)")
	radius := flag.Int("radius", 200, "search radius in meters")
	flag.Parse()

	if *lat == 0 || *lon == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load("straatradar-lookup")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup("straatradar-lookup", cfg.Logging.Level, "text")

	client := wfs.NewClient(wfs.Config{
		BaseURL:        cfg.WFS.BaseURL,
		TypeName:       cfg.WFS.TypeName,
		PageSize:       cfg.WFS.PageSize,
		RequestTimeout: cfg.WFS.Timeout(),
		RewriteFrom:    cfg.WFS.RewriteFrom,
		RewriteTo:      cfg.WFS.RewriteTo,
	})
	svc := usecases.NewStreetService(client, projection.RDNew{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	streets, err := svc.FindNearby(ctx, domain.GeoPoint{Lat: *lat, Lon: *lon}, *radius)
	if err != nil {
		log.Fatalf("lookup: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DISTANCE\tSTREET\tPLACE\tMUNICIPALITY\tNEAREST POINT")
	for _, s := range streets {
		fmt.Fprintf(w, "%dm\t%s\t%s\t%s\t%.6f,%.6f\n",
			s.DistanceMeters, s.Street, s.Place, s.Municipality,
			s.NearestPoint.Lat, s.NearestPoint.Lon)
	}
	w.Flush()

	fmt.Printf("\n%d streets within %dm\n", len(streets), *radius)
}
