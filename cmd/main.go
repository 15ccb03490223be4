package main

import (
	"net/http"
	"os"
	"time"

	"github.com/autotrips/bid-service/internal/db"
	"github.com/autotrips/bid-service/internal/handlers"
	"github.com/autotrips/bid-service/internal/repository"
	"github.com/autotrips/bid-service/internal/router"
	"github.com/autotrips/bid-service/internal/router/config"
	"github.com/autotrips/bid-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("cannot load config: ", err)
	}

	runDBMigration(logger, cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		logger.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	bidRepo := repository.NewPostgresBidRepository(dbPool)
	transporterRepo := repository.NewPostgresTransporterRepository(dbPool)

	bidService := services.NewBidService(bidRepo, transporterRepo)
	transporterService := services.NewTransporterService(transporterRepo)

	bidHandler := handlers.NewBidHandler(bidService, logger, 5*time.Second)
	transporterHandler := handlers.NewTransporterHandler(transporterService, logger, 5*time.Second)

	routes := router.InitRoutes(bidHandler, transporterHandler)

	logger.Infof("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(logger *logrus.Logger, migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		logger.Fatal("cannot create a new migrate instance: ", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Fatal("failed to run migrate up: ", err)
	}
	logger.Info("db migrated successfully")
}
