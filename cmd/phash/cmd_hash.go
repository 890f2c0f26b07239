package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/phash/internal/scan"
)

// getHashCmd returns the definition of the hash command.
func getHashCmd(env *rootEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "hash FILE...",
		Short: "Print the fingerprint of each image",
		Long: `
Prints one line per image: the algorithm id, the fingerprint in hex and the
path. Files that cannot be hashed are logged and make the command fail after
the rest have been printed.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: env.runHashCmd,
	}
}

func (r *rootEnv) runHashCmd(cmd *cobra.Command, args []string) error {
	engine, err := r.cfg.Engine()
	if err != nil {
		return err
	}

	results, err := scan.NewScanner(engine, r.cfg.Workers).HashFiles(cmd.Context(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			slog.Error("cannot hash file", "path", res.Path, "error", res.Err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%s  %s  %s\n", res.Fingerprint.OriginID(), res.Fingerprint.Hex(), res.Path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
