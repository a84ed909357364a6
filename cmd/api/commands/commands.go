package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reactiverse/core/internal/adapters/cache"
	"github.com/reactiverse/core/internal/adapters/repository"
	"github.com/reactiverse/core/internal/application/services"
	"github.com/reactiverse/core/internal/infrastructure/config"
	"github.com/reactiverse/core/internal/infrastructure/database"
	"github.com/reactiverse/core/internal/infrastructure/logger"
	"github.com/reactiverse/core/internal/infrastructure/metrics"
	"github.com/reactiverse/core/internal/infrastructure/server"
	"github.com/reactiverse/core/internal/infrastructure/validation"
	"github.com/reactiverse/core/internal/ports"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "development"
)

const shutdownTimeout = 15 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Reactiverse API server",
		Long:  "Start the Reactiverse API server with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewStoreCommand creates the record store command with subcommands
func NewStoreCommand() *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Record store commands",
		Long:  "Create and inspect the JSON record files",
	}

	storeCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create any missing record files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openStore(nil)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Init(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Record store ready in %s\n", cfg.Store.Dir)
			return nil
		},
	})

	storeCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report the state of every record file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openStore(nil)
			if err != nil {
				return err
			}
			defer db.Close()

			healthy := true
			out := cmd.OutOrStdout()
			for _, st := range db.Status(cmd.Context()) {
				switch {
				case st.Error != "":
					healthy = false
					fmt.Fprintf(out, "%-14s ERROR   %s\n", st.File, st.Error)
				case !st.Exists:
					fmt.Fprintf(out, "%-14s missing\n", st.File)
				default:
					fmt.Fprintf(out, "%-14s ok      %d records, %d bytes\n", st.File, st.Records, st.Size)
				}
			}

			if !healthy {
				return errors.New("record store has unreadable files")
			}
			return nil
		},
	})

	return storeCmd
}

// NewAdminCommand creates the administrator management command
func NewAdminCommand() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator management commands",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			cfg, db, err := openStore(nil)
			if err != nil {
				return err
			}
			defer db.Close()

			hasher, err := services.NewPasswordHasher(cfg.Security.PasswordScheme)
			if err != nil {
				return err
			}

			authService := services.NewAuthService(
				repository.NewUserRepository(db.Users),
				repository.NewAdminRepository(db.Admins),
				hasher,
				validation.New(),
				logger.NewNop(),
			)

			result := authService.CreateAdmin(cmd.Context(), ports.CreateAdminRequest{
				Username: username,
				Password: password,
			})
			if !result.Success {
				for field, messages := range result.Errors {
					for _, msg := range messages {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", field, msg)
					}
				}
				return errors.New(result.Message)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Administrator created successfully:\n")
			fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", result.AdminUser.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  Username: %s\n", result.AdminUser.Username)
			fmt.Fprintf(cmd.OutOrStdout(), "  Password scheme: %s\n", hasher.Scheme())
			return nil
		},
	}

	createCmd.Flags().String("username", "", "Administrator username (required)")
	createCmd.Flags().String("password", "", "Administrator password (required)")
	_ = createCmd.MarkFlagRequired("username")
	_ = createCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(createCmd)
	return adminCmd
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered users without their credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			_, db, err := openStore(nil)
			if err != nil {
				return err
			}
			defer db.Close()

			users, err := repository.NewUserRepository(db.Users).List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				public := make([]interface{}, 0, len(users))
				for _, u := range users {
					public = append(public, u.Public())
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(public)
			}

			for _, u := range users {
				fmt.Fprintf(out, "%-20s %-30s %s\n", u.ID, u.Email, u.Name)
			}
			fmt.Fprintf(out, "%d users\n", len(users))
			return nil
		},
	}
	listCmd.Flags().Bool("json", false, "Print users as JSON")

	userCmd.AddCommand(listCmd)
	return userCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Reactiverse version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Reactiverse Core %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Build Date: %s\n", BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

func openStore(observer repository.Observer) (*config.Config, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.New(cfg.Store, observer)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func newViewCache(cfg *config.Config) (ports.ViewCache, error) {
	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		redisCache, err := cache.NewRedisCache(cfg.Redis.GetAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		return redisCache, nil
	case config.CacheDriverNone:
		return nil, nil
	default:
		return cache.NewMemoryCache(), nil
	}
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	var m *metrics.Metrics
	observer := appLogger.LogStoreOperation
	if cfg.Metrics.Enabled {
		m = metrics.New()
		observer = func(file, op string, err error) {
			m.ObserveStore(file, op, err)
			appLogger.LogStoreOperation(file, op, err)
		}
	}

	db, err := database.New(cfg.Store, observer)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Init(ctx); err != nil {
		appLogger.Errorw("Record store is not usable", "dir", db.Dir(), "error", err)
		return err
	}

	viewCache, err := newViewCache(cfg)
	if err != nil {
		appLogger.Errorw("Failed to initialize view cache", "driver", cfg.Cache.Driver, "error", err)
		return err
	}
	if viewCache != nil {
		defer viewCache.Close()
	}

	srv, err := server.New(cfg, db, viewCache, m, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	appLogger.Infow("Starting Reactiverse API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"store_dir", db.Dir(),
		"cache", cfg.Cache.Driver,
		"password_scheme", cfg.Security.PasswordScheme,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Infow("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("Server forced to shutdown", "error", err)
		return err
	}

	appLogger.Infow("Server exited")
	return nil
}
