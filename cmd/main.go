package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Dosada05/scrim-tournaments/commands"
	"github.com/Dosada05/scrim-tournaments/config"
	"github.com/Dosada05/scrim-tournaments/db"
	"github.com/Dosada05/scrim-tournaments/handlers"
	"github.com/Dosada05/scrim-tournaments/repositories"
	api "github.com/Dosada05/scrim-tournaments/routes"
	"github.com/Dosada05/scrim-tournaments/services"
	"github.com/Dosada05/scrim-tournaments/storage"
	"github.com/Dosada05/scrim-tournaments/utils"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 15 * time.Second
	tokenTTL        = 24 * time.Hour
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "scrim",
		Usage:  "scrim tournament service",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the admin API and command intake",
				Action: serve,
			},
			{
				Name:      "hash-password",
				Usage:     "print a bcrypt hash for ADMIN_PASSWORD_HASH (reads the password from stdin)",
				ArgsUsage: " ",
				Action:    hashPassword,
			},
			{
				Name:  "issue-token",
				Usage: "sign a JWT with JWT_SECRET_KEY, e.g. a bot token for the chat gateway",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Usage: "token subject (sub claim)", Required: true},
					&cli.StringFlag{Name: "role", Usage: "bot or admin", Value: services.RoleBot},
					&cli.DurationFlag{Name: "ttl", Usage: "token lifetime", Value: tokenTTL},
				},
				Action: issueToken,
			},
		},
	}
}

func hashPassword(c *cli.Context) error {
	password, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read password: %w", err)
	}
	hash, err := utils.HashPassword(strings.TrimRight(password, "\r\n"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hash)
	return nil
}

func issueToken(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: cfg.LogLevel}))

	auth := services.NewAdminAuth("", cfg.JWTSecretKey, c.Duration("ttl"), logger)
	issued, err := auth.IssueToken(c.String("subject"), c.String("role"))
	if err != nil {
		return err
	}
	logger.Info("token issued",
		slog.String("subject", c.String("subject")),
		slog.String("role", c.String("role")),
		slog.Time("expires_at", issued.ExpiresAt),
	)
	fmt.Fprintln(c.App.Writer, issued.Token)
	return nil
}

func serve(c *cli.Context) error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
	)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище состояния
	backend, closeBackend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open state backend", slog.Any("error", err))
		return err
	}
	defer closeBackend()

	store, err := repositories.NewStateStore(ctx, backend, repositories.StateStoreOptions{
		PersistTimeout: cfg.PersistTimeout,
		Logger:         logger,
	})
	if err != nil {
		logger.Error("failed to load tournament state", slog.Any("error", err))
		return err
	}

	// Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := services.NewMetrics(registry)

	// Инициализация сервисов
	templateCatalog := services.NewTemplateCatalog(store, logger, metrics)
	tournamentRegistry := services.NewTournamentRegistry(store, logger, metrics)
	teamRoster := services.NewTeamRoster(store, logger, metrics)
	submissionWorkflow := services.NewSubmissionWorkflow(store, logger, metrics)
	leaderboardBuilder := services.NewLeaderboardBuilder(store, logger, metrics)
	dashboardService := services.NewDashboardService(store)
	adminAuth := services.NewAdminAuth(cfg.AdminPassHash, cfg.JWTSecretKey, tokenTTL, logger)
	if cfg.AdminPassHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is empty, admin login is disabled")
	}
	dispatcher := commands.NewDispatcher(templateCatalog, tournamentRegistry, teamRoster, submissionWorkflow, leaderboardBuilder, logger)
	logger.Info("services initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{
			JWTSecret:      cfg.JWTSecretKey,
			AllowedOrigins: cfg.AllowedOrigins,
			Logger:         logger,
			Gatherer:       registry,
		},
		handlers.NewAuthHandler(adminAuth),
		handlers.NewSubmissionHandler(submissionWorkflow),
		handlers.NewTournamentHandler(templateCatalog, tournamentRegistry, teamRoster, leaderboardBuilder),
		handlers.NewDashboardHandler(dashboardService),
		handlers.NewCommandHandler(dispatcher),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				return errors.Join(fmt.Errorf("graceful shutdown failed: %w", err), closeErr)
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		return err
	}
	logger.Info("application exited")
	return nil
}

// openBackend выбирает DocumentStore по STORE_DRIVER. close освобождает ресурсы драйвера.
func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.DocumentStore, func(), error) {
	noop := func() {}
	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory state, nothing survives a restart")
		return repositories.NewMemoryDocumentStore(), noop, nil

	case config.DriverPostgres:
		conn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, noop, err
		}
		closeConn := func() {
			if err := conn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}
		backend, err := repositories.NewPostgresDocumentStore(ctx, conn)
		if err != nil {
			closeConn()
			return nil, noop, err
		}
		logger.Info("database connection established")
		return backend, closeConn, nil

	case config.DriverR2:
		objects, err := storage.NewCloudflareR2Storage(ctx, storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Cloudflare R2 storage initialized", slog.String("key", cfg.R2StateKey))
		return repositories.NewObjectDocumentStore(objects, cfg.R2StateKey, logger), noop, nil

	default:
		logger.Info("using file state", slog.String("path", cfg.DataFile))
		return repositories.NewFileDocumentStore(cfg.DataFile), noop, nil
	}
}
