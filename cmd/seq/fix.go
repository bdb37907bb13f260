package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"seq/internal/diag"
	"seq/internal/driver"
	"seq/internal/fix"
	"seq/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] path...",
	Short: "Apply suggested fixes for malformed invocations",
	Long: `Fix expands the inputs in memory, collects the fixes attached to the
diagnostics and rewrites the source files. By default the first safe fix is
applied; --all applies every safe fix and --id a single fix by identifier.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.Flags().Bool("list", false, "list available fixes and exit")
	fixCmd.Flags().Bool("fragment", false, "treat each file as one invocation input")
	addEngineFlags(fixCmd)
}

func readFixOptions(cmd *cobra.Command) (fix.ApplyOptions, error) {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fix.ApplyOptions{}, err
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fix.ApplyOptions{}, fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fix.ApplyOptions{}, fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	return fix.ApplyOptions{Mode: mode, TargetID: targetID, DryRun: dryRun}, nil
}

func runFix(cmd *cobra.Command, args []string) (err error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts, err := readFixOptions(cmd)
	if err != nil {
		return err
	}
	fragment, err := cmd.Flags().GetBool("fragment")
	if err != nil {
		return err
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd, s)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	expandOpts := s.expandOptions()
	expandOpts.Fragment = fragment
	fs, results, err := driver.ExpandPaths(cmd.Context(), args, expandOpts, s.cfg.Expand.Jobs)
	if err != nil {
		return fmt.Errorf("fix: expand failed: %w", err)
	}

	var diagnostics []diag.Diagnostic
	for _, r := range results {
		if r == nil || r.Bag == nil {
			continue
		}
		r.Bag.Sort()
		diagnostics = append(diagnostics, r.Bag.Items()...)
	}

	out := cmd.OutOrStdout()
	if list {
		return listFixes(out, fs.Get, diagnostics)
	}
	res, applyErr := fix.Apply(fs, diagnostics, opts)
	return handleApplyResult(out, res, applyErr, opts.DryRun)
}

// listFixes prints every fix with the ID accepted by --id.
func listFixes(w io.Writer, file func(id source.FileID) *source.File, diagnostics []diag.Diagnostic) error {
	n := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			id := fix.ID(d, idx)
			path := "(unknown)"
			if sf := file(d.Primary.File); sf != nil {
				path = sf.Path
			}
			if _, err := fmt.Fprintf(w, "%s [%s] %s: %s (%s)\n", path, id, d.Code.ID(), f.Title, f.Applicability); err != nil {
				return err
			}
			n++
		}
	}
	if n == 0 {
		_, err := fmt.Fprintln(w, "No fixes available.")
		return err
	}
	return nil
}

func handleApplyResult(w io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	verb := "Applied"
	if dryRun {
		verb = "Would apply"
	}
	if len(res.Applied) > 0 {
		fmt.Fprintf(w, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(w, "  %s [%s] at %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability)
		}
	}

	if len(res.FileChanges) > 0 {
		if dryRun {
			fmt.Fprintln(w, "Files that would change:")
		} else {
			fmt.Fprintln(w, "Updated files:")
		}
		for _, change := range res.FileChanges {
			fmt.Fprintf(w, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			_, err := fmt.Fprintln(w, "No applicable fixes found.")
			return err
		}
		return applyErr
	}
	return nil
}
