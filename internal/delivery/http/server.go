package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/config"
	"github.com/nldi-service/internal/delivery/http/handler"
	"github.com/nldi-service/internal/delivery/http/middleware"
)

// Server is the Fiber HTTP server hosting the linked-data API.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	aboutHandler      *handler.AboutHandler
	openAPIHandler    *handler.OpenAPIHandler
	linkedDataHandler *handler.LinkedDataHandler
	navigationHandler *handler.NavigationHandler
	basinHandler      *handler.BasinHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	aboutHandler *handler.AboutHandler,
	openAPIHandler *handler.OpenAPIHandler,
	linkedDataHandler *handler.LinkedDataHandler,
	navigationHandler *handler.NavigationHandler,
	basinHandler *handler.BasinHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Metadata.Title,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: errorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		aboutHandler:      aboutHandler,
		openAPIHandler:    openAPIHandler,
		linkedDataHandler: linkedDataHandler,
		navigationHandler: navigationHandler,
		basinHandler:      basinHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group(s.config.Server.Prefix)

	api.Get("/", s.aboutHandler.GetRoot)
	api.Get("/about/health", s.aboutHandler.GetHealth)
	api.Get("/openapi", s.openAPIHandler.GetDocument)

	// Static linked-data paths must be registered before the :source
	// parameter routes or Fiber would capture them as source suffixes.
	api.Get("/linked-data", s.linkedDataHandler.ListSources)
	api.Get("/linked-data/hydrolocation", s.linkedDataHandler.GetHydrolocation)
	api.Get("/linked-data/comid/position", s.linkedDataHandler.GetPosition)

	api.Get("/linked-data/:source", s.linkedDataHandler.ListFeatures)
	api.Get("/linked-data/:source/:featureId", s.linkedDataHandler.GetFeature)
	api.Get("/linked-data/:source/:featureId/basin", s.basinHandler.GetBasin)
	api.Get("/linked-data/:source/:featureId/navigation", s.navigationHandler.GetIndex)
	api.Get("/linked-data/:source/:featureId/navigation/:mode", s.navigationHandler.GetDataSources)
	api.Get("/linked-data/:source/:featureId/navigation/:mode/:dataSource", s.navigationHandler.Navigate)
}

// Start blocks serving requests until Shutdown.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the router for handler-level tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// errorHandler catches errors escaping the handler chain, including router
// level ones like 404s on unknown paths.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code >= 500 {
			logger.Error("HTTP error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		kind := "Internal"
		if code == fiber.StatusNotFound {
			kind = "NotFound"
		}
		return c.Status(code).JSON(fiber.Map{
			"code":    kind,
			"message": message,
		})
	}
}
