package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"seq/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default seq.toml",
	Long: `Init writes seq.toml with the default settings into dir (the current
directory when omitted). A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing seq.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	path, err := config.WriteDefault(target, force)
	if err != nil {
		return err
	}
	rel := path
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, path); err == nil {
			rel = r
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", rel)
	return nil
}
