package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpadapter "straatradar/internal/adapters/http"
	natsadapter "straatradar/internal/adapters/nats"
	"straatradar/internal/adapters/wfs"
	"straatradar/internal/core/ports"
	"straatradar/internal/core/usecases"
	"straatradar/internal/pkg/config"
	"straatradar/internal/pkg/logging"
	"straatradar/internal/pkg/projection"
	"straatradar/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("straatradar-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup("straatradar-api", cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Upstream feature service
	wfsClient := wfs.NewClient(wfs.Config{
		BaseURL:        cfg.WFS.BaseURL,
		TypeName:       cfg.WFS.TypeName,
		PageSize:       cfg.WFS.PageSize,
		RequestTimeout: cfg.WFS.Timeout(),
		RewriteFrom:    cfg.WFS.RewriteFrom,
		RewriteTo:      cfg.WFS.RewriteTo,
	})

	// Lookup events (optional)
	var events ports.EventPublisher
	deps := &httpadapter.Dependencies{WFS: wfsClient}
	if cfg.NATS.Enabled {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			defer pub.Close()
			events = pub
			deps.NATS = pub.Conn()
		}
	}

	deps.Streets = usecases.NewStreetService(wfsClient, projection.RDNew{}, events)

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    256 * 1024,
		AppName:      "StraatRadar API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	httpadapter.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
