package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"huntflow-sync/config"
	apiv1 "huntflow-sync/controllers/v1"
	publicapi "huntflow-sync/controllers/v1/public"
	"huntflow-sync/fiberlog"
	"huntflow-sync/initializers"
	"huntflow-sync/middleware"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	shutdownTelemetry := initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: 4 * 1024 * 1024,
	})
	app.Use(fiberRecover.New())

	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: swaggerFile,
		}))
	}

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT",
	}))

	//публичное api
	public := fiber.New()
	apiV1.Mount("/public", public)
	publicapi.InitPublicVacancyApiRouters(public)
	publicapi.InitPublicDepartmentApiRouters(public)

	//админка
	admin := fiber.New()
	apiV1.Mount("/admin", admin)
	admin.Use(middleware.WithBodyLimit(1024 * 1024))
	admin.Use(middleware.AuthorizationRequired(config.Conf.Auth.JWTSecret))
	apiv1.InitSyncApiRouters(admin)
	apiv1.InitReferralApiRouters(admin)
	apiv1.InitVacancyApiRouters(admin)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-c:
		case <-ctx.Done():
			return
		}
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		shutdownTelemetry()
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		cancel()
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
