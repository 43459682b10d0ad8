package main

import (
	"collab-backend/config"
	apiv1 "collab-backend/controllers/v1"
	"collab-backend/controllers/v1/dict"
	"collab-backend/fiberlog"
	"collab-backend/initializers"
	"collab-backend/lib/metrics"
	"collab-backend/middleware"
	apimodels "collab-backend/models/api"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

const bodyLimit = 1 * 1024 * 1024

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	app.Use(fiberRecover.New())

	if _, err := os.Stat(config.Conf.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: config.Conf.App.SwaggerFile,
		}))
	}
	if *config.Conf.Metrics.Enabled {
		app.Get(config.Conf.Metrics.Path, adaptor.HTTPHandler(metrics.Handler()))
	}

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	apiV1.Use(middleware.Metrics())
	apiV1.Use(middleware.WithBodyLimit(bodyLimit))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowOrigins:     config.Conf.App.CorsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PATCH, DELETE, PUT",
		AllowCredentials: config.Conf.App.CorsOrigins != "*",
	}))
	apiV1.Get("ping", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse("pong"))
	})
	apiv1.InitUserApiRouters(apiV1)
	apiv1.InitProjectApiRouters(apiV1)
	apiv1.InitPositionApiRouters(apiV1)
	apiv1.InitApplicationApiRouters(apiV1)
	apiv1.InitFeedApiRouters(apiV1)

	//dict
	dict.InitTechnologyDictApiRouters(apiV1)
	dict.InitCatalogDictApiRouters(apiV1)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
