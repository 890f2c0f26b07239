package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/phash/internal/config"
)

// configEnv provides the environment for the config command.
type configEnv struct {
	*rootEnv
	out string
}

// getConfigCmd returns the definition of the config command.
func getConfigCmd(root *rootEnv) *cobra.Command {
	env := &configEnv{rootEnv: root}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Export the engine configuration",
		Long: `
Prints the engine configuration built from the flags as YAML, preceded by its
algorithm id. The output can be passed back with --engine to reproduce the
same fingerprints later or on another machine.
`,
		Args: cobra.NoArgs,
		RunE: env.runConfigCmd,
	}
	cmd.Flags().StringVar(&env.out, "out", "", "write the config to this file instead of stdout")
	return cmd
}

func (c *configEnv) runConfigCmd(cmd *cobra.Command, _ []string) error {
	engine, err := c.cfg.Engine()
	if err != nil {
		return err
	}
	hc := engine.Config()
	id := engine.AlgorithmID()

	out := cmd.OutOrStdout()
	if c.out != "" {
		if err := config.WriteEngineFile(c.out, hc); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s (algorithm id %s)\n", c.out, id)
		return nil
	}

	data, err := config.MarshalEngine(hc)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# algorithm id: %s\n", id)
	_, err = out.Write(data)
	return err
}
