package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"postal/cmd"
	"postal/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(gormpostgres.Open(dsn(configs)), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded, relying on environment: %v", err)
	}

	config := cmd.DefaultConfig()

	config.HTTPPort = envString("HTTP_PORT", config.HTTPPort)
	config.DBHost = envString("DB_HOST", config.DBHost)
	config.DBPort = envString("DB_PORT", config.DBPort)
	config.DBUser = envString("DB_USER", config.DBUser)
	config.DBPassword = envString("DB_PASSWORD", config.DBPassword)
	config.DBName = envString("DB_NAME", config.DBName)
	config.DBSslMode = envString("DB_SSLMODE", config.DBSslMode)

	config.BatchMaxWeightKg = envDecimal("BATCH_MAX_WEIGHT_KG", config.BatchMaxWeightKg)
	config.BatchMaxOrderCount = envInt("BATCH_MAX_ORDER_COUNT", config.BatchMaxOrderCount)
	config.BatchMinOrderCount = envInt("BATCH_MIN_ORDER_COUNT", config.BatchMinOrderCount)
	config.SealAge = envDuration("BATCH_SEAL_AGE", config.SealAge)
	config.MaxOpenAge = envDuration("BATCH_MAX_OPEN_AGE", config.MaxOpenAge)

	config.AutoBatchSchedule = envString("AUTO_BATCH_SCHEDULE", config.AutoBatchSchedule)
	config.AutoSealSchedule = envString("AUTO_SEAL_SCHEDULE", config.AutoSealSchedule)
	config.ConsolidationSchedule = envString("CONSOLIDATION_SCHEDULE", config.ConsolidationSchedule)

	return config
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func envDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func dsn(config cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
