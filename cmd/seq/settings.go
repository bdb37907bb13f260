package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seq/internal/config"
	"seq/internal/diagfmt"
	"seq/internal/driver"
	"seq/internal/format"
	"seq/internal/seq"
)

// settings is seq.toml with the command line applied on top.
type settings struct {
	cfg     config.Config
	cfgPath string

	seq    seq.Options
	format format.Options

	maxDiagnostics int
	color          bool
	quiet          bool
	timings        bool
}

// addEngineFlags registers the flags that override [expand].
func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().String("macro", "", "macro name recognised at use sites (default from seq.toml, else \"seq\")")
	cmd.Flags().String("markers", "", "repetition marker policy (first|all|reject)")
	cmd.Flags().String("layout", "", "output layout (preserve|compact)")
	cmd.Flags().Int("max-depth", 0, "nested re-expansion limit")
	cmd.Flags().Int("max-iterations", 0, "largest range a single invocation may expand")
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	root := cmd.Root().PersistentFlags()

	cfgFlag, err := root.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	s := &settings{}
	if cfgFlag != "" {
		s.cfg, err = config.Load(cfgFlag)
		s.cfgPath = cfgFlag
	} else {
		s.cfg, s.cfgPath, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	// флаги перекрывают seq.toml только если заданы явно
	overrideString(cmd, "macro", &s.cfg.Expand.Macro)
	overrideString(cmd, "markers", &s.cfg.Expand.Markers)
	overrideString(cmd, "layout", &s.cfg.Expand.Layout)
	overrideInt(cmd, "max-depth", &s.cfg.Expand.MaxDepth)
	overrideInt(cmd, "max-iterations", &s.cfg.Expand.MaxIterations)
	overrideInt(cmd, "jobs", &s.cfg.Expand.Jobs)
	overrideString(cmd, "cache-dir", &s.cfg.Cache.Dir)
	overrideInt(cmd, "max-diagnostics", &s.cfg.Diagnostics.Max)
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	if s.seq, err = s.cfg.SeqOptions(); err != nil {
		return nil, err
	}
	if s.format, err = s.cfg.FormatOptions(); err != nil {
		return nil, err
	}
	s.maxDiagnostics = s.cfg.Diagnostics.Max

	colorFlag, err := root.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto":
		s.color = isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return s, nil
}

func overrideString(cmd *cobra.Command, name string, dst *string) {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		*dst = f.Value.String()
	}
}

func overrideInt(cmd *cobra.Command, name string, dst *int) {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		if v, err := cmd.Flags().GetInt(name); err == nil {
			*dst = v
		}
	}
}

// expandOptions builds the driver options shared by expand, check and serve.
func (s *settings) expandOptions() driver.ExpandOptions {
	return driver.ExpandOptions{
		Seq:            s.seq,
		Format:         s.format,
		MaxDiagnostics: s.maxDiagnostics,
		Timings:        s.timings,
	}
}

// openCache returns nil when [cache].dir is unset.
func (s *settings) openCache() (*driver.DiskCache, error) {
	if s.cfg.Cache.Dir == "" {
		return nil, nil
	}
	return driver.OpenDiskCache(s.cfg.Cache.Dir)
}

func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   2,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
		ShowFixes: true,
	}
}
