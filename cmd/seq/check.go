package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seq/internal/driver"
	"seq/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] path...",
	Short: "Report expansion diagnostics without writing output",
	Long: `Check expands every input in memory and prints the diagnostics.
The exit status is 1 when any file has errors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("fragment", false, "treat each file as one invocation input")
	checkCmd.Flags().Bool("fmt-check", false, "also verify that printing each unexpanded file reproduces it byte for byte")
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|short|golden)")
	checkCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	addEngineFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) (err error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	fragment, err := cmd.Flags().GetBool("fragment")
	if err != nil {
		return fmt.Errorf("failed to get fragment flag: %w", err)
	}
	fmtCheck, err := cmd.Flags().GetBool("fmt-check")
	if err != nil {
		return fmt.Errorf("failed to get fmt-check flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if err := validDiagnosticFormat(format); err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd, s)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	opts := s.expandOptions()
	opts.Fragment = fragment
	opts.Verify = true
	opts.Timings = s.timings && format == "json"
	var timer *observ.Timer
	if s.timings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	ctx := cmd.Context()
	fs, results, err := driver.ExpandPaths(ctx, args, opts, s.cfg.Expand.Jobs)
	if err != nil {
		return err
	}
	if err := printResultDiagnostics(os.Stdout, fs, results, s, format); err != nil {
		return err
	}

	fmtFailures := 0
	if fmtCheck {
		for _, res := range results {
			sf := fs.Get(res.FileID)
			if sf == nil || res.Bag.HasErrors() {
				continue
			}
			if ok, msg := driver.RunFmtCheck(sf, s.maxDiagnostics); !ok {
				fmtFailures++
				fmt.Fprintf(os.Stderr, "%s: %s\n", res.Path, msg)
			}
		}
	}

	sum := summarize(results)
	if !s.quiet && format != "json" {
		fmt.Fprintln(os.Stderr, sum.String())
	}
	if s.timings && format != "json" {
		printStageTimings(os.Stderr, timer, sum.files)
	}
	if sum.errors > 0 {
		return fmt.Errorf("check failed with %d error(s)", sum.errors)
	}
	if fmtFailures > 0 {
		return fmt.Errorf("fmt-check failed for %d file(s)", fmtFailures)
	}
	return nil
}
