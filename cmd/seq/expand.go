package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"seq/internal/diagfmt"
	"seq/internal/driver"
	"seq/internal/observ"
	"seq/internal/source"
	"seq/internal/tree"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] path...",
	Short: "Expand seq! invocations in files or directories",
	Long: `Expand replaces every seq!(N in a..b { ... }) use site with its expansion.
Directories are searched recursively for *.sq files; "-" reads stdin.
Without --out the expansions are written to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().Bool("fragment", false, "treat each file as one invocation input (N in a..b { ... })")
	expandCmd.Flags().String("out", "", "write expansions into this directory instead of stdout")
	expandCmd.Flags().Bool("check", false, "with --out: only report outputs that would change")
	expandCmd.Flags().String("emit", "text", "stdout format (text|tokens|json)")
	expandCmd.Flags().String("diagnostics-format", "pretty", "diagnostics format (pretty|json|short|golden)")
	expandCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	expandCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	expandCmd.Flags().Bool("verify", false, "re-parse the printed output and warn when the tree changes")
	expandCmd.Flags().String("cache-dir", "", "on-disk expansion cache directory (default from seq.toml)")
	expandCmd.Flags().Bool("no-cache", false, "disable the expansion cache")
	expandCmd.Flags().Bool("cache-clear", false, "drop the expansion cache before running")
	addEngineFlags(expandCmd)
}

type expandFlags struct {
	fragment   bool
	outDir     string
	check      bool
	emit       string
	diagFormat string
	ui         uiMode
	verify     bool
	noCache    bool
	cacheClear bool
}

func readExpandFlags(cmd *cobra.Command) (expandFlags, error) {
	var f expandFlags
	var err error
	if f.fragment, err = cmd.Flags().GetBool("fragment"); err != nil {
		return f, err
	}
	if f.outDir, err = cmd.Flags().GetString("out"); err != nil {
		return f, err
	}
	if f.check, err = cmd.Flags().GetBool("check"); err != nil {
		return f, err
	}
	if f.emit, err = cmd.Flags().GetString("emit"); err != nil {
		return f, err
	}
	switch f.emit {
	case "text", "tokens", "json":
	default:
		return f, fmt.Errorf("unknown --emit value %q (expected text|tokens|json)", f.emit)
	}
	if f.diagFormat, err = cmd.Flags().GetString("diagnostics-format"); err != nil {
		return f, err
	}
	if err := validDiagnosticFormat(f.diagFormat); err != nil {
		return f, err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.verify, err = cmd.Flags().GetBool("verify"); err != nil {
		return f, err
	}
	if f.noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return f, err
	}
	if f.cacheClear, err = cmd.Flags().GetBool("cache-clear"); err != nil {
		return f, err
	}
	if f.check && f.outDir == "" {
		return f, fmt.Errorf("--check requires --out")
	}
	return f, nil
}

func runExpand(cmd *cobra.Command, args []string) (err error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	flags, err := readExpandFlags(cmd)
	if err != nil {
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

	ctx := cmd.Context()
	opts := s.expandOptions()
	opts.Fragment = flags.fragment
	opts.Verify = flags.verify
	// в pretty-режиме тайминги печатаются таблицей, а не диагностикой
	opts.Timings = s.timings && flags.diagFormat == "json"
	var timer *observ.Timer
	if s.timings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	// из кэша приходит только текст, деревьев там нет
	if !flags.noCache && (flags.emit == "text" || flags.outDir != "") {
		cache, cacheErr := s.openCache()
		if cacheErr != nil {
			return fmt.Errorf("failed to open cache: %w", cacheErr)
		}
		if cache != nil && flags.cacheClear {
			if dropErr := cache.DropAll(); dropErr != nil {
				return fmt.Errorf("failed to clear cache: %w", dropErr)
			}
		}
		opts.Cache = cache
	}

	var writeOpts *driver.WriteOptions
	if flags.outDir != "" {
		writeOpts = &driver.WriteOptions{OutDir: flags.outDir, BaseDir: writeBase(args), Check: flags.check}
	}

	run, err := expandArgs(ctx, args, opts, s.cfg.Expand.Jobs, flags, writeOpts)
	if err != nil {
		return err
	}
	fs, results := run.fs, run.results

	if writeOpts != nil && !run.wrote {
		if run.written, err = driver.WriteOutputs(ctx, results, *writeOpts); err != nil {
			return err
		}
	}
	var changed []driver.WriteResult
	for _, wr := range run.written {
		if wr.Changed {
			changed = append(changed, wr)
		}
	}

	if derr := printResultDiagnostics(os.Stderr, fs, results, s, flags.diagFormat); derr != nil {
		return derr
	}

	if writeOpts == nil {
		if eerr := emitResults(os.Stdout, results, flags.emit); eerr != nil {
			return eerr
		}
	} else if flags.check {
		for _, wr := range changed {
			fmt.Fprintf(os.Stdout, "would change: %s\n", wr.Target)
		}
	}

	sum := summarize(results)
	if !s.quiet && (writeOpts != nil || len(results) > 1) {
		fmt.Fprintln(os.Stderr, sum.String())
	}
	if s.timings && flags.diagFormat != "json" {
		printStageTimings(os.Stderr, timer, sum.files)
	}

	if sum.errors > 0 {
		return fmt.Errorf("expansion failed with %d error(s)", sum.errors)
	}
	if flags.check && len(changed) > 0 {
		return fmt.Errorf("%d output(s) out of date", len(changed))
	}
	return nil
}

type expandRun struct {
	fs      *source.FileSet
	results []*driver.ExpandResult
	// written is filled when the outputs were already written under the UI
	written []driver.WriteResult
	wrote   bool
}

// expandArgs picks the cheapest route: stdin alone goes through ExpandFile,
// everything else through the parallel driver, with progress when enabled.
func expandArgs(ctx context.Context, args []string, opts driver.ExpandOptions, jobs int, flags expandFlags, write *driver.WriteOptions) (expandRun, error) {
	if len(args) == 1 && args[0] == driver.StdinPath {
		fs, res, err := driver.ExpandFile(ctx, driver.StdinPath, opts)
		if err != nil {
			return expandRun{}, err
		}
		return expandRun{fs: fs, results: []*driver.ExpandResult{res}}, nil
	}

	files, err := driver.CollectSourceFiles(ctx, args)
	if err != nil {
		return expandRun{}, err
	}
	if write != nil && shouldUseTUI(flags.ui, len(files)) {
		return runExpandWithUI(ctx, "expanding", files, args, opts, jobs, *write)
	}
	fs, results, err := driver.ExpandPaths(ctx, args, opts, jobs)
	return expandRun{fs: fs, results: results}, err
}

// writeBase keeps the directory structure below a single directory argument.
func writeBase(args []string) string {
	if len(args) == 1 && args[0] != driver.StdinPath {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			return args[0]
		}
		return filepath.Dir(args[0])
	}
	return ""
}

func emitResults(w io.Writer, results []*driver.ExpandResult, emit string) error {
	var ok []*driver.ExpandResult
	for _, res := range results {
		if res != nil && !res.HasErrors() {
			ok = append(ok, res)
		}
	}
	for i, res := range ok {
		if len(ok) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", res.Path)
		}
		var err error
		switch emit {
		case "tokens":
			_, err = fmt.Fprint(w, tree.Dump(res.Tokens))
		case "json":
			err = diagfmt.FormatTreeJSON(w, res.Tokens)
		default:
			_, err = w.Write(res.Output)
			if err == nil && len(ok) > 1 && !strings.HasSuffix(string(res.Output), "\n") {
				_, err = fmt.Fprintln(w)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
