package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"seq/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "seq",
	Short: "Range-repetition templating for token streams",
	Long: `seq expands seq!(N in a..b { ... }) invocations: the body is repeated
once per integer in the range, with N substituted and ident~N pasted.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().String("config", "", "path to seq.toml (default: search upwards from the working directory)")

	// Трассировка
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")

	// Профилирование
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main runs the root command. Any command error exits with status 1.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
