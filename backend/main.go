package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"dsatracker/backend/config"
	"dsatracker/backend/engine"
	"dsatracker/backend/repository"
	"dsatracker/backend/routes"
	"dsatracker/backend/services"
	"dsatracker/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.LogMode)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	cliApp := &cli.App{
		Name:  "dsa-tracker",
		Usage: "DSA progress tracker backend",
		Commands: []*cli.Command{
			serveCommand(cfg, logger),
			migrateCommand(cfg, logger),
			seedCommand(cfg, logger),
		},
		DefaultCommand: "serve",
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Error("Command failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func openDB(cfg *config.Config, logger *utils.Logger) (*gorm.DB, error) {
	db, err := repository.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("Database ready", "driver", cfg.DBDriver)
	return db, nil
}

func serveCommand(cfg *config.Config, logger *utils.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port", Value: cfg.ServerPort, EnvVars: []string{"SERVER_PORT"}},
			&cli.BoolFlag{Name: "seed", Usage: "seed the roster before serving"},
		},
		Action: func(c *cli.Context) error {
			cal, err := engine.NewCalendar(cfg.TZOffset)
			if err != nil {
				return fmt.Errorf("TZ_OFFSET: %w", err)
			}

			// Initialize database
			db, err := openDB(cfg, logger)
			if err != nil {
				return err
			}
			if c.Bool("seed") {
				if err := seedRoster(c.Context, db, cfg, logger); err != nil {
					return err
				}
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			var cache services.LeaderboardCache = services.NoopCache{}
			if cfg.RedisAddr != "" {
				rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
				defer rdb.Close()
				pingCtx, cancel := context.WithTimeout(c.Context, 2*time.Second)
				if err := rdb.Ping(pingCtx).Err(); err != nil {
					logger.Warn("Redis unreachable, leaderboard cache lookups will fail over to the store", "addr", cfg.RedisAddr, "error", err)
				}
				cancel()
				cache = services.NewRedisLeaderboardCache(rdb, cfg.LeaderboardCacheTTL)
			}

			svc := services.NewTrackerService(db, services.Options{
				Calendar:     cal,
				Cache:        cache,
				Metrics:      services.NewMetrics(registry),
				StoreTimeout: cfg.StoreTimeout,
				Logger:       logger,
			})

			app := routes.NewApp(svc, cfg, logger, registry)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				logger.Info("Shutting down")
				if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
					logger.Error("Shutdown failed", "error", err)
				}
			}()

			addr := ":" + c.String("port")
			logger.Info("Listening", "addr", addr, "zone", cal.Location().String(), "redis", cfg.RedisAddr != "")
			return app.Listen(addr)
		},
	}
}

func migrateCommand(cfg *config.Config, logger *utils.Logger) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create or update the database schema",
		Action: func(c *cli.Context) error {
			_, err := openDB(cfg, logger)
			return err
		},
	}
}

func seedCommand(cfg *config.Config, logger *utils.Logger) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "create the roster users and their topics",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "roster", Usage: "roster YAML file", Value: cfg.RosterFile, EnvVars: []string{"ROSTER_FILE"}},
		},
		Action: func(c *cli.Context) error {
			cfg.RosterFile = c.String("roster")
			db, err := openDB(cfg, logger)
			if err != nil {
				return err
			}
			return seedRoster(c.Context, db, cfg, logger)
		},
	}
}

func seedRoster(ctx context.Context, db *gorm.DB, cfg *config.Config, logger *utils.Logger) error {
	roster, err := repository.LoadRoster(cfg.RosterFile)
	if err != nil {
		return err
	}
	if err := repository.SeedRoster(ctx, db, roster, repository.TopicCatalog, logger); err != nil {
		return fmt.Errorf("seed roster: %w", err)
	}
	logger.Info("Roster seeded", "file", cfg.RosterFile, "users", len(roster.Users))
	return nil
}
