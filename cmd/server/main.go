// main.go
//
// Citenote: manuscripts, papers and citations with session authentication
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of citenote.
// citenote is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// citenote is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with citenote.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/yashodhanketkar/citenote/data"
	"github.com/yashodhanketkar/citenote/internal/config"
	"github.com/yashodhanketkar/citenote/internal/database"
	"github.com/yashodhanketkar/citenote/internal/handlers"
	"github.com/yashodhanketkar/citenote/internal/logging"
	"github.com/yashodhanketkar/citenote/internal/middleware"
	"github.com/yashodhanketkar/citenote/internal/security"
	"github.com/yashodhanketkar/citenote/internal/services"
	"github.com/yashodhanketkar/citenote/internal/session"
	"github.com/yashodhanketkar/citenote/internal/store"
	"go.uber.org/zap"

	_ "github.com/yashodhanketkar/citenote/docs/api" // Swagger docs
)

// @title Citenote API
// @version 1.0.0
// @description Manuscripts, papers and citations with session authentication
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/yashodhanketkar/citenote

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name citenote_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Connect to database (records pool)
	appDB, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to records database", zap.Error(err))
	}
	defer database.Close(appDB)

	// Connect to database (accounts pool)
	userDB, err := database.ConnectUser(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to accounts database", zap.Error(err))
	}
	defer database.Close(userDB)

	// Run auto-migrations
	if err := database.AutoMigrate(appDB); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	entryTypes, err := services.ParseEntryTypes(data.EntryTypes)
	if err != nil {
		logger.Fatal("Failed to load citation entry types", zap.Error(err))
	}

	var sessions session.Store
	switch cfg.SessionStore {
	case "redis":
		sessions = session.NewRedisStore(session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), cfg.SessionTTL)
	default:
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	records := store.New(appDB, cfg.StoreTimeout)
	accounts := store.New(userDB, cfg.StoreTimeout)
	ops := services.NewWrapper(logger, services.StatusMode(cfg.ErrorStatusMode))
	auth := services.NewAuthService(accounts,
		security.NewBcryptHasher(cfg.PasswordPepper, cfg.BcryptCost),
		services.NewRoleValidator(cfg.AllowedRoles),
		logger.Named("auth"))

	citations := services.NewCitationService(records, logger, entryTypes)
	papers := &handlers.ResourceHandler{
		Service: services.NewPaperService(records, logger),
		Ops:     ops,
		Details: fiber.Map{"citation": citations.Catalogue()},
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		AppName:      cfg.AppName,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger.Named("http")))
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("citenote")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(middleware.VersionMiddleware(cfg.AppVersion))
	app.Use(middleware.Sessions(session.NewManager(sessions, logger.Named("session")), cfg.SessionCookie, logger))

	handlers.Register(app, handlers.Handlers{
		Home:         &handlers.HomeHandler{Config: cfg, DB: appDB, Sessions: sessions, Log: logger},
		Users:        &handlers.UserHandler{Auth: auth, Ops: ops},
		Manuscripts:  &handlers.ResourceHandler{Service: services.NewManuscriptService(records, logger), Ops: ops},
		Papers:       papers,
		Associations: &handlers.AssociationHandler{Service: services.NewAssociationService(records, logger), Ops: ops},
		Citations:    &handlers.CitationHandler{Service: citations, Ops: ops},
	})

	// 404 handler
	app.Use(handlers.NotFound)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	logger.Info("Starting server", zap.String("port", cfg.Port), zap.String("session_store", cfg.SessionStore))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	logger.Info("Server stopped")
}
