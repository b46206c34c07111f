package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"inkstudio/internal/models/response_models"
	"inkstudio/internal/repositories"
	"inkstudio/internal/services"
	"inkstudio/internal/storage"
	mem "inkstudio/pkg/memcache"
)

func newMigrateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newSeedCommand(e *env) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert studios, artists, clients and appointments from a data.json file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := e.migrate(cmd.Context()); err != nil {
				return err
			}
			seeder := services.NewSeedService(repositories.NewSeedRepository(e.db), nil, e.log)
			sum, err := seeder.SeedFromJSON(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d studios, %d artists, %d clients, %d appointments\n",
				sum.Studios, sum.Artists, sum.Clients, sum.Appointments)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "data.json", "Seed file")
	return cmd
}

func newSweepCommand(e *env) *cobra.Command {
	var grace time.Duration
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Remove stored files that no image row references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("grace") {
				grace = e.cfg.SweepGrace
			}
			if grace <= 0 {
				return fmt.Errorf("--grace must be positive, got %s", grace)
			}
			store, err := storage.Open(e.cfg)
			if err != nil {
				return err
			}
			sweeper := services.NewSweepService(repositories.NewImageRepository(e.db), store, nil, e.log)
			report, err := sweeper.Sweep(cmd.Context(), grace)
			if report != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "scanned %d, removed %d, kept %d\n",
					report.Scanned, len(report.Removed), report.Kept)
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&grace, "grace", time.Hour, "Keep unreferenced files younger than this (default SWEEP_GRACE)")
	return cmd
}

func newHashManagerPasswordsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-manager-passwords",
		Short: "Hash studio manager passwords still stored in plain text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := services.NewIdentityService(
				repositories.NewStudioRepository(e.db),
				repositories.NewArtistRepository(e.db),
				repositories.NewClientRepository(e.db),
				mem.NewTTLCache[response_models.StudioTheme](),
				e.cfg.ThemeCacheTTL,
				e.log,
			)
			n, err := identity.HashLegacyManagerPasswords(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "hashed %d manager passwords\n", n)
			return err
		},
	}
}
