// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/ortelius/governance-backend/internal/services"
	"github.com/ortelius/governance-backend/restapi/modules/auth"
	"github.com/ortelius/governance-backend/restapi/modules/daos"
	"go.uber.org/zap"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
// CORS is handled globally in internal/api/fiber.go.
func SetupRoutes(app *fiber.App, svc *services.GovernanceService, schema graphql.Schema, logger *zap.Logger) {
	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/graphql", auth.OptionalAuth, GraphQLHandler(schema))

	// Auth Routes
	authGroup := api.Group("/auth")
	authGroup.Post("/logout", auth.Logout())
	authGroup.Get("/me", auth.OptionalAuth, auth.Me())
	authGroup.Post("/refresh", auth.RefreshToken())

	// DAO Routes
	daoGroup := api.Group("/daos")
	daoGroup.Get("/", daos.ListDAOs(svc))
	daoGroup.Post("/", auth.RequireAuth, daos.CreateDAO(svc))
	daoGroup.Get("/:id", daos.GetDAO(svc))
	daoGroup.Get("/:id/proposals", daos.ListProposals(svc))
	daoGroup.Post("/:id/proposals", auth.RequireAuth, daos.CreateProposal(svc))
	daoGroup.Get("/:id/proposals/:pid", daos.GetProposal(svc))
	daoGroup.Post("/:id/proposals/:pid/vote", auth.RequireAuth, daos.Vote(svc))
	daoGroup.Post("/:id/proposals/:pid/execute", auth.RequireAuth, daos.Execute(svc))
	daoGroup.Post("/:id/deposit", auth.RequireAuth, daos.Deposit(svc))
	daoGroup.Get("/:id/members/:member", daos.GetMember(svc))
	daoGroup.Get("/:id/activities", daos.ListActivities(svc))
	daoGroup.Get("/:id/activities/:member", daos.GetActivity(svc))

	// Cross-DAO Routes
	api.Get("/proposals", daos.ListAllProposals(svc))
	userGroup := api.Group("/users")
	userGroup.Get("/:user/daos", daos.ListUserDAOs(svc))
	userGroup.Get("/:user/proposals", daos.ListUserProposals(svc))
	userGroup.Get("/:user/activities", daos.GetUserActivities(svc))

	logger.Info("API routes initialized successfully")
}
