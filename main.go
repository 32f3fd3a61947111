package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bidding "auction-settlement/internal/biddingService"
	"auction-settlement/internal/config"
	"auction-settlement/internal/database"
	"auction-settlement/internal/jobs"
	"auction-settlement/internal/notify"
	"auction-settlement/internal/repository"
	"auction-settlement/internal/server"
	"auction-settlement/internal/settlement"
	"auction-settlement/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("Failed to load configuration", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("Invalid LOG_LEVEL, keeping info", map[string]any{"error": err.Error()})
	}

	repo, err := openRepository(cfg)
	if err != nil {
		utils.Fatal("Failed to open repository", map[string]any{"driver": cfg.Database.Driver, "error": err.Error()})
	}

	notifier := notify.NewLogDispatcher()
	settlementSvc := settlement.NewService(repo, notifier, cfg.Policy)
	biddingSvc := bidding.NewBiddingService(repo, notifier, cfg.Policy).WithSettler(settlementSvc)

	router := server.SetupRouter(cfg, biddingSvc, settlementSvc)

	var sweeper *jobs.Sweeper
	if cfg.Cron.SweepInterval > 0 {
		sweeper = jobs.NewSweeper(settlementSvc, cfg.Cron.SweepInterval)
		go sweeper.Start()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Info("Starting auction server", map[string]any{"port": cfg.Server.Port, "db_driver": cfg.Database.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("Failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Info("Shutting down server", nil)

	if sweeper != nil {
		sweeper.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}
	utils.Info("Server exited", nil)
}

// openRepository selects the storage backend from DB_DRIVER
func openRepository(cfg *config.Config) (repository.AuctionDB, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := database.ConnectPostgres(cfg.GetDSN())
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		return repository.NewGormRepo(db), nil
	case "sqlite":
		db, err := database.ConnectSQLite(cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		return repository.NewGormRepo(db), nil
	default:
		return repository.NewMemoryRepo(), nil
	}
}
