package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"seq/internal/driver"
	"seq/internal/wire"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer msgpack expansion requests on stdin/stdout",
	Long: `Serve reads a stream of msgpack-encoded requests from stdin and writes
one response per request to stdout until stdin is closed. Each request
carries either source text or a token tree built by the host.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addEngineFlags(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) (err error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, s)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := s.expandOptions()
	// таймингам нет места в ответе; хост меряет сам
	opts.Timings = false

	if !s.quiet {
		fmt.Fprintf(os.Stderr, "seq: serving on stdin/stdout (macro %q, markers %s)\n", s.seq.Macro, s.seq.Markers)
	}
	err = wire.Serve(ctx, os.Stdin, os.Stdout, driver.ServeHandler(opts))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
