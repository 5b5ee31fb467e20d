package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"teach-sync/core/loader"
	"teach-sync/core/logger"
	"teach-sync/core/middleware/auth"
	"teach-sync/core/middleware/rayid"
	"teach-sync/core/server"
	"teach-sync/feature/teach"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "teach-sync/docs/swagger"
)

// @title Teach Sync API
// @version 1.0
// @description API for importing question/answer snapshots.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

var startURI string

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the teach-sync server",
	Long: `Starts the HTTP server and initializes all enabled features.
Without a reachable store the server still starts, with the teach routes disabled.`,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := newSession()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer s.close()
		zap.ReplaceGlobals(s.logger)
		logg := s.logger

		if err := s.cfg.Server.Validate(); err != nil {
			logg.Fatal("Invalid server configuration", zap.Error(err))
		}

		var svc *teach.Service
		if err := s.connect(startURI, false); err != nil {
			logg.Warn("Database connection failed, teach feature disabled", zap.Error(err))
		} else {
			logg.Info("Connected to store", zap.String("driver", s.db.Dialector.Name()))
			svc = s.service()
		}

		app, err := newServer(s.cfg.Server, svc, logg)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", s.cfg.Server.Port))
			if err := app.Listen(":" + s.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// newServer builds the fiber app: ray id first, request logging, public swagger UI,
// then API key auth in front of every feature route.
func newServer(cfg server.Config, svc *teach.Service, logg *zap.Logger) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.BodyLimit(),
	})

	mgr := loader.NewManager()
	mgr.Register(teach.NewFeature(svc, logg))

	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Use(auth.New(auth.Config{ApiKey: cfg.ApiKey}))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}

func init() {
	startCmd.Flags().StringVar(&startURI, "uri", "", "Database URI (overrides config/uris.json and DATABASE_URI)")
	RootCmd.AddCommand(startCmd)
}
