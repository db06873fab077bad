package server

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"price-tracker/internal/core/config"
	"price-tracker/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "price-tracker/docs/swagger"
)

// shutdownGrace is how long in-flight requests get to finish on SIGINT or
// SIGTERM. Tracking runs triggered over HTTP can take a while against slow
// storefronts.
const shutdownGrace = 15 * time.Second

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "price-tracker",
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/swagger/*", swagger.HandlerDefault)

	return &Server{
		App: app,
		cfg: cfg,
	}
}

// Run starts the HTTP server and blocks until the listener fails or the
// process receives an interrupt. On interrupt it drains in-flight requests
// and returns nil, so deferred cleanup in main still runs.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	l := logger.Get()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.App.Listen(addr)
	}()

	l.Info("Starting server", zap.String("address", addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		l.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	return s.App.ShutdownWithTimeout(shutdownGrace)
}
