package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/phash/internal/scan"
)

// getCompareCmd returns the definition of the compare command.
func getCompareCmd(env *rootEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "compare A B",
		Short: "Compare two images",
		Args:  cobra.ExactArgs(2),
		RunE:  env.runCompareCmd,
	}
}

func (r *rootEnv) runCompareCmd(cmd *cobra.Command, args []string) error {
	engine, err := r.cfg.Engine()
	if err != nil {
		return err
	}

	results, err := scan.NewScanner(engine, 2).HashFiles(cmd.Context(), args)
	if err != nil {
		return err
	}
	for _, res := range results {
		if res.Err != nil {
			return res.Err
		}
	}

	a, b := results[0].Fingerprint, results[1].Fingerprint
	d, err := a.HammingDistance(b)
	if err != nil {
		return err
	}
	n := float64(d) / float64(a.Len())

	verdict := "different"
	if n <= r.cfg.MaxDistance {
		verdict = "similar"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "algorithm   %s\n", a.OriginID())
	fmt.Fprintf(out, "distance    %d/%d\n", d, a.Len())
	fmt.Fprintf(out, "normalized  %.4f\n", n)
	fmt.Fprintf(out, "verdict     %s\n", verdict)
	return nil
}
