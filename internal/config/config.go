package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"seq/internal/format"
	"seq/internal/seq"
	"seq/internal/trace"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "seq.toml"

// Config mirrors seq.toml.
type Config struct {
	Expand      ExpandConfig      `toml:"expand"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Trace       TraceConfig       `toml:"trace"`
	Cache       CacheConfig       `toml:"cache"`
}

type ExpandConfig struct {
	Macro         string `toml:"macro"`
	Markers       string `toml:"markers"`
	Layout        string `toml:"layout"`
	MaxDepth      int    `toml:"max_depth"`
	MaxIterations int    `toml:"max_iterations"`
	Jobs          int    `toml:"jobs"`
}

type DiagnosticsConfig struct {
	Max int `toml:"max"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// CacheConfig enables the on-disk expansion cache when Dir is set.
// A relative Dir is resolved against the directory of seq.toml.
type CacheConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no seq.toml exists.
func Default() Config {
	return Config{
		Expand: ExpandConfig{
			Macro:         seq.DefaultMacro,
			Markers:       seq.MarkersFirst.String(),
			Layout:        format.LayoutPreserve.String(),
			MaxDepth:      seq.DefaultMaxDepth,
			MaxIterations: seq.DefaultMaxIterations,
		},
		Diagnostics: DiagnosticsConfig{Max: 100},
		Trace:       TraceConfig{Level: "off", Output: "-"},
	}
}

// Find walks up from startDir to locate seq.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default and validates the result. Keys that
// are absent keep their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("expand", "macro") && strings.TrimSpace(cfg.Expand.Macro) == "" {
		return Config{}, fmt.Errorf("%s: [expand].macro must not be empty", path)
	}
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads seq.toml starting at startDir. When no file
// exists the defaults are returned with an empty path.
func Discover(startDir string) (cfg Config, path string, err error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err = Load(path)
	return cfg, path, err
}

// Validate checks enumerated values and bounds.
func (c Config) Validate() error {
	if _, err := seq.ParseMarkerPolicy(c.Expand.Markers); err != nil {
		return fmt.Errorf("[expand].markers: %w", err)
	}
	if _, err := format.ParseLayout(c.Expand.Layout); err != nil {
		return fmt.Errorf("[expand].layout: %w", err)
	}
	if c.Expand.MaxDepth < 0 {
		return fmt.Errorf("[expand].max_depth must not be negative")
	}
	if c.Expand.MaxIterations < 0 {
		return fmt.Errorf("[expand].max_iterations must not be negative")
	}
	if c.Expand.Jobs < 0 {
		return fmt.Errorf("[expand].jobs must not be negative")
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must not be negative")
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	return nil
}

// SeqOptions converts the [expand] section for the engine.
func (c Config) SeqOptions() (seq.Options, error) {
	policy, err := seq.ParseMarkerPolicy(c.Expand.Markers)
	if err != nil {
		return seq.Options{}, err
	}
	return seq.Options{
		Markers:       policy,
		Macro:         strings.TrimSpace(c.Expand.Macro),
		MaxDepth:      c.Expand.MaxDepth,
		MaxIterations: c.Expand.MaxIterations,
	}, nil
}

// FormatOptions converts the [expand] section for the printer.
func (c Config) FormatOptions() (format.Options, error) {
	layout, err := format.ParseLayout(c.Expand.Layout)
	if err != nil {
		return format.Options{}, err
	}
	return format.Options{Layout: layout}, nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# seq configuration\n")
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault creates dir/seq.toml with the defaults. An existing file is
// left alone unless force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, FileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return path, fmt.Errorf("failed to stat %q: %w", path, err)
		}
	}
	data, err := Default().Encode()
	if err != nil {
		return path, err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
