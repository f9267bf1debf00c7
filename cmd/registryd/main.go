package main

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/provenio/registry/cmd/registryd/container"
	"github.com/provenio/registry/cmd/registryd/routes"
	"github.com/provenio/registry/common/bootstrap"
	"github.com/provenio/registry/common/server"
)

func main() {
	ctx := context.Background()

	// Bootstrap common components (store, logger, telemetry)
	components, err := bootstrap.Setup(ctx, "registryd")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap registryd: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	// Initialize service container (singleton pattern - all services created once)
	serviceContainer, err := container.NewContainer(components)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize service container: %v\n", err)
		os.Exit(1)
	}

	e := setupEcho()
	setupMiddleware(e)
	setupHealthCheck(e, serviceContainer)
	registerRoutes(e, serviceContainer)

	startServer(e, components)
}

// setupEcho initializes the Echo server with basic configuration
func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

// setupMiddleware configures all middleware for the Echo server
func setupMiddleware(e *echo.Echo) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo, c *container.Container) {
	e.GET("/health", func(ec echo.Context) error {
		status := map[string]string{
			"status":  "ok",
			"service": "registryd",
		}
		if c.Redis != nil {
			if err := c.Redis.Ping(ec.Request().Context()); err != nil {
				status["redis"] = "unreachable"
			} else {
				status["redis"] = "ok"
			}
		}
		return ec.JSON(200, status)
	})
}

// registerRoutes registers all application routes using the service container
func registerRoutes(e *echo.Echo, serviceContainer *container.Container) {
	routes.RegisterAssetRoutes(e, serviceContainer)
}

// startServer runs the Echo server with graceful shutdown
func startServer(e *echo.Echo, components *bootstrap.Components) {
	srv := server.New("registryd", components.Config.Service.Port, e, components.Logger)
	if err := srv.Start(); err != nil {
		components.Logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
