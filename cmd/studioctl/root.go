package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkstudio/internal/config"
	"inkstudio/internal/infra"
	"inkstudio/pkg/logger"
)

// env carries what every subcommand needs once flags are parsed.
type env struct {
	v   *viper.Viper
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func newRootCommand() *cobra.Command {
	e := &env{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:           "studioctl",
		Short:         "Operator tasks for the studio backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("db-driver", "", "Database driver, postgres or sqlite (env DB_DRIVER)")
	flags.String("db-url", "", "Database DSN or sqlite file (env DB_URL)")
	flags.String("upload-root", "", "Upload directory for the disk backend (env UPLOAD_ROOT)")
	flags.String("log-level", "", "Log level (env LOG_LEVEL)")
	for key, flag := range map[string]string{
		"DB_DRIVER":   "db-driver",
		"DB_URL":      "db-url",
		"UPLOAD_ROOT": "upload-root",
		"LOG_LEVEL":   "log-level",
	} {
		_ = e.v.BindPFlag(key, flags.Lookup(flag))
	}

	cmd.AddCommand(
		newMigrateCommand(e),
		newSeedCommand(e),
		newSweepCommand(e),
		newHashManagerPasswordsCommand(e),
	)
	return cmd
}

func (e *env) open() error {
	cfg, err := config.FromViper(e.v)
	if err != nil {
		return err
	}
	log, err := logger.New(os.Stderr, logger.Config{Format: cfg.LogFormat, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	db, err := infra.OpenDatabase(cfg.DatabaseDriver, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	e.cfg, e.log, e.db = cfg, log, db
	return nil
}

func (e *env) close() {
	if e.db != nil {
		infra.CloseDatabase(e.db, e.log)
	}
	if e.log != nil {
		_ = e.log.Sync()
	}
}

func (e *env) migrate(ctx context.Context) error {
	if err := infra.Migrate(ctx, e.db); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}
