// Package api builds the Fiber application serving the REST and GraphQL APIs.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ortelius/governance-backend/graphql"
	"github.com/ortelius/governance-backend/internal/services"
	"github.com/ortelius/governance-backend/restapi"
	"go.uber.org/zap"
)

// NewFiberApp creates and configures a Fiber app with REST and GraphQL routes
func NewFiberApp(svc *services.GovernanceService, corsOrigins string, log *zap.Logger) (*fiber.App, error) {
	// Initialize GraphQL schema
	schema, err := graphql.CreateSchema(svc.Registry, svc.Now)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:     "governance-backend API v1.0",
		BodyLimit:   1 * 1024 * 1024, // 1MB
		ReadTimeout: 60 * time.Second,
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	// Consolidated CORS Configuration
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		AllowMethods:     "GET, POST, HEAD, OPTIONS",
	}))

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("graphql_op", "-")
		return c.Next()
	})
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} - ${latency} ${method} ${path} ${locals:graphql_op}\n",
	}))

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "daos": svc.Registry.Count()})
	})

	// Setup REST and GraphQL routes (Pass the schema here)
	restapi.SetupRoutes(app, svc, schema, log)

	return app, nil
}
