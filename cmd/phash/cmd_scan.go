package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/phash/internal/scan"
)

// scanEnv provides the environment for the scan command.
type scanEnv struct {
	*rootEnv
	sequence bool
	distance int
}

// getScanCmd returns the definition of the scan command.
func getScanCmd(root *rootEnv) *cobra.Command {
	env := &scanEnv{rootEnv: root}
	cmd := &cobra.Command{
		Use:   "scan DIR",
		Short: "Find near-duplicate images in a directory tree",
		Long: `
Hashes every image under DIR and prints each pair whose normalized distance
is at most --max-distance, closest first.

With --sequence, files are instead visited in path order and each one that
repeats the last distinct image is reported, which suits frame dumps and
burst shots.
`,
		Args: cobra.ExactArgs(1),
		RunE: env.runScanCmd,
	}

	cmd.Flags().StringSliceVar(&root.cfg.Extensions, "ext", root.cfg.Extensions, "file extensions to include")
	cmd.Flags().BoolVar(&env.sequence, "sequence", false, "report consecutive repeats instead of all pairs")
	cmd.Flags().IntVar(&env.distance, "repeat-distance", scan.DefaultTrackerDistance, "Hamming distance at or below which --sequence counts a repeat")
	return cmd
}

func (s *scanEnv) runScanCmd(cmd *cobra.Command, args []string) error {
	engine, err := s.cfg.Engine()
	if err != nil {
		return err
	}
	paths, err := scan.Walk(args[0], s.cfg.Extensions)
	if err != nil {
		return err
	}

	results, err := scan.NewScanner(engine, s.cfg.Workers).HashFiles(cmd.Context(), paths)
	if err != nil {
		return err
	}
	for _, res := range results {
		if res.Err != nil {
			slog.Warn("skipped file", "path", res.Path, "error", res.Err)
		}
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	var rows int
	if s.sequence {
		rows = s.sequenceRows(table, results)
	} else {
		rows = pairRows(table, results, s.cfg.MaxDistance)
	}
	if rows > 0 {
		table.Render()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d files, %d matches\n", len(results), rows)
	return nil
}

func pairRows(table *tablewriter.Table, results []scan.Result, maxDistance float64) int {
	pairs := scan.Pairs(results, maxDistance)
	table.SetHeader([]string{"Distance", "Normalized", "A", "B"})
	for _, p := range pairs {
		table.Append([]string{
			strconv.Itoa(p.Distance),
			strconv.FormatFloat(p.Normalized, 'f', 4, 64),
			p.A,
			p.B,
		})
	}
	return len(pairs)
}

func (s *scanEnv) sequenceRows(table *tablewriter.Table, results []scan.Result) int {
	tracker := scan.NewTracker(s.distance)
	table.SetHeader([]string{"Distance", "Repeat"})
	rows := 0
	for _, res := range results {
		if res.Fingerprint == nil {
			continue
		}
		if similar, d := tracker.Observe(res.Fingerprint); similar {
			table.Append([]string{strconv.Itoa(d), res.Path})
			rows++
		}
	}
	return rows
}
