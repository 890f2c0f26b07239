package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/phash/internal/config"
)

// rootEnv holds the configuration shared by every subcommand. Environment
// variables supply the defaults and flags override them.
type rootEnv struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	env := &rootEnv{cfg: config.Load()}
	cmd := &cobra.Command{
		Use:   "phash",
		Short: "Perceptual image hashing",
		Long: `
Computes perceptual fingerprints of images and compares them by Hamming
distance. Visually similar images get fingerprints with few differing bits.

Every fingerprint is tagged with the algorithm id of the engine that made it;
only fingerprints with the same id are comparable.
`,
		SilenceUsage:      true,
		PersistentPreRunE: env.setupLogging,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&env.cfg.Algorithm, "algorithm", env.cfg.Algorithm, "hashing strategy: average, difference or perception")
	flags.IntVar(&env.cfg.Resolution, "resolution", env.cfg.Resolution, "minimum number of fingerprint bits")
	flags.StringArrayVar(&env.cfg.Filters, "filter", env.cfg.Filters, "preprocessing filter, repeatable (e.g. grayscale, box:3, gaussian:5x5:1.4)")
	flags.StringVar(&env.cfg.EngineFile, "engine", env.cfg.EngineFile, "exported engine config; overrides --algorithm, --resolution and --filter")
	flags.Float64Var(&env.cfg.MaxDistance, "max-distance", env.cfg.MaxDistance, "normalized distance at or below which images are similar")
	flags.IntVar(&env.cfg.Workers, "workers", env.cfg.Workers, "number of files hashed concurrently")
	flags.StringVar(&env.cfg.LogLevel, "log-level", env.cfg.LogLevel, "debug, info, warn or error")

	cmd.AddCommand(
		getHashCmd(env),
		getCompareCmd(env),
		getScanCmd(env),
		getConfigCmd(env),
	)
	return cmd
}

func (r *rootEnv) setupLogging(cmd *cobra.Command, _ []string) error {
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: r.cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return nil
}
