package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	saved, savedNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = saved, savedNoColor }()
	color.NoColor = true

	tests := []struct {
		in, want string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3-rc.1+build.5", "1.2.3-rc.1+build.5"},
		{"nightly", "nightly"},
		{"", "dev"},
	}
	for _, tt := range tests {
		Version = tt.in
		if got := Colored(); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	saved, savedNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = saved, savedNoColor }()
	color.NoColor = false

	Version = "1.2.3"
	if got := Colored(); got == "1.2.3" {
		t.Errorf("expected ANSI colors in %q", got)
	}
}
