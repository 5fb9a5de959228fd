package main

import (
	"applicants/config"
	"applicants/middleware"
	"applicants/services/applicant/delivery"
	"applicants/services/applicant/repository"
	"applicants/services/applicant/usecase"
	"applicants/views"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	log = config.GetLogrusInstance()

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using process environment")
	}

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig(views.NewEngine()))

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetCorsAllowOrigins(),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	// method override has to run before routing reaches the handlers
	app.Use(middleware.MethodOverride())
	app.Use(middleware.RequestLogger(log))

	app.Use("/assets", filesystem.New(filesystem.Config{
		Root:       http.FS(views.Assets),
		PathPrefix: "assets",
	}))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}

	// Regis repo and Usecase Here
	applicantRepo := repository.NewApplicantRepository(db)
	applicantUC := usecase.NewApplicantUseCase(applicantRepo, config.GetContextTimeout(), log)

	// delivery here
	delivery.NewApplicantHandler(app, applicantUC)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server for Public on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
}
