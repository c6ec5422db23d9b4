package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orris-inc/docforge/internal/infrastructure/config"
	"github.com/orris-inc/docforge/internal/infrastructure/database"
	"github.com/orris-inc/docforge/internal/infrastructure/migration"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// Migration tools accepted by --strategy.
const (
	strategyGoose         = "goose"
	strategyGolangMigrate = "golang-migrate"
)

var (
	env        string
	configPath string
	strategy   string
	scriptsDir string
	name       string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVar(&strategy, "strategy", strategyGoose, "Migration tool: goose or golang-migrate (mysql only)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new goose SQL migration for the configured database driver.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&scriptsDir, "dir", migration.DefaultScriptsDir, "Goose scripts root directory")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func initEnv(connect bool) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if connect {
		if err := database.Init(&cfg.Database); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return cfg, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("running up migrations", "environment", env, "strategy", strategy)

	s, err := newStrategy(cfg.Database.Driver, log)
	if err != nil {
		return err
	}

	if err := migration.NewManagerWithStrategy(s, log).Migrate(database.Get()); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "strategy", strategy, "steps", steps)

	switch strategy {
	case strategyGolangMigrate:
		s, err := migration.NewGolangMigrateStrategy(cfg.Database.Driver, log)
		if err != nil {
			return err
		}
		if err := s.MigrateDown(database.Get(), steps); err != nil {
			return fmt.Errorf("down migration failed: %w", err)
		}
	default:
		s, err := migration.NewGooseStrategy(cfg.Database.Driver, log)
		if err != nil {
			return err
		}
		if err := s.MigrateDown(database.Get(), steps); err != nil {
			return fmt.Errorf("down migration failed: %w", err)
		}
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", env)
	fmt.Fprintf(out, "  Driver:          %s\n", cfg.Database.Driver)

	if strategy == strategyGolangMigrate {
		s, err := migration.NewGolangMigrateStrategy(cfg.Database.Driver, log)
		if err != nil {
			return err
		}
		version, dirty, err := s.GetVersion(database.Get())
		if err != nil {
			return fmt.Errorf("failed to get migration version: %w", err)
		}
		fmt.Fprintf(out, "  Current Version: %d\n", version)
		fmt.Fprintf(out, "  Dirty:           %t\n", dirty)
		return nil
	}

	s, err := migration.NewGooseStrategy(cfg.Database.Driver, log)
	if err != nil {
		return err
	}
	version, err := s.GetVersion(database.Get())
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	if err := s.Status(database.Get()); err != nil {
		log.Errorw("failed to get detailed status", "error", err)
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if strategy != strategyGoose {
		return fmt.Errorf("create is only supported with the goose strategy")
	}

	s, err := migration.NewGooseStrategy(cfg.Database.Driver, log)
	if err != nil {
		return err
	}
	if err := s.Create(scriptsDir, name); err != nil {
		log.Errorw("failed to create migration", "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, scriptsDir)
	return nil
}

func newStrategy(driver string, log logger.Interface) (migration.Strategy, error) {
	switch strategy {
	case strategyGoose, "":
		return migration.NewGooseStrategy(driver, log)
	case strategyGolangMigrate:
		return migration.NewGolangMigrateStrategy(driver, log)
	default:
		return nil, fmt.Errorf("unknown migration strategy: %s", strategy)
	}
}
