package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/weatherops/weather-automation-api/internal/app"
	"github.com/weatherops/weather-automation-api/internal/config"

	_ "modernc.org/sqlite"
)

// @title Weather Automation API
// @version 1.0
// @description API for submitting weather requests with webhook and email delivery
// @host localhost:8080
// @BasePath /api/
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	logger := log.New(log.Writer(), "WeatherAutomationAPI: ", log.LstdFlags)

	application := app.New(*cfg, logger)
	container := application.Init()

	defer func() {
		if err := application.Stop(container); err != nil {
			logger.Panicf("failed to shutdown application: %v", err)
		}
		logger.Println("Application shutdown successfully")
	}()

	if err := application.Start(container); err != nil {
		logger.Panicf("failed to start application: %v", err)
	}
}
