package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seq/internal/diagfmt"
	"seq/internal/driver"
	"seq/internal/tree"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Print the flat token stream of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

var treeCmd = &cobra.Command{
	Use:   "tree [flags] file",
	Short: "Print the token trees of a file before expansion",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	treeCmd.Flags().String("format", "dump", "output format (dump|sexpr|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], s.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || (result.Bag.HasWarnings() && !s.quiet) {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, s.prettyOpts())
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func runTree(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result, err := driver.ParseTree(args[0], s.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if result.Bag.Len() > 0 && (result.Bag.HasErrors() || !s.quiet) {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, s.prettyOpts())
	}

	toks := result.Stream.Tokens
	switch format {
	case "dump":
		_, err = fmt.Fprint(os.Stdout, tree.Dump(toks))
	case "sexpr":
		_, err = fmt.Fprintln(os.Stdout, tree.Sexpr(toks))
	case "json":
		err = diagfmt.FormatTreeJSON(os.Stdout, toks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s has %d error(s)", args[0], result.Bag.ErrorCount())
	}
	return nil
}
