package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pixelpour/storefront/api-gateway/config"
	"github.com/pixelpour/storefront/api-gateway/health"
	"github.com/pixelpour/storefront/api-gateway/middleware"
	"github.com/pixelpour/storefront/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix      string
	ServiceName string
	Description string
	RequireAuth bool
}

// Routes holds all route definitions. The catalog and reviews are open to
// guests; carts, favorites and notifications need a logged-in shopper.
var Routes = []RouteDefinition{
	{
		Prefix:      "/auth",
		ServiceName: "storefront",
		Description: "Authentication endpoints (login, register, logout)",
		RequireAuth: false,
	},
	{
		Prefix:      "/products",
		ServiceName: "storefront",
		Description: "Catalog browsing, search and reviews",
		RequireAuth: false,
	},
	{
		Prefix:      "/categories",
		ServiceName: "storefront",
		Description: "Catalog categories",
		RequireAuth: false,
	},
	{
		Prefix:      "/users",
		ServiceName: "storefront",
		Description: "Shopper profile",
		RequireAuth: true,
	},
	{
		Prefix:      "/cart",
		ServiceName: "storefront",
		Description: "Shopping cart",
		RequireAuth: true,
	},
	{
		Prefix:      "/favorites",
		ServiceName: "storefront",
		Description: "Favorites list",
		RequireAuth: true,
	},
	{
		Prefix:      "/notifications",
		ServiceName: "storefront",
		Description: "Toast notification feed",
		RequireAuth: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream instances)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllInstances(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed instance health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		return c.JSON(healthChecker.CheckAllInstances(ctx))
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "PixelPour Storefront Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler
	if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	} else {
		// Optional auth so rate limiting keys on the user when logged in
		middlewares = append(middlewares, middleware.OptionalAuthMiddleware())
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	app.All(route.Prefix, append(middlewares, handler)...)
}
