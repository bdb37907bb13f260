package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata of the seq CLI. Overridable with
// -ldflags "-X seq/internal/version.GitCommit=...".
var (
	// Version is the semantic version without decoration.
	Version = "0.1.0-dev"

	GitCommit  = ""
	GitMessage = ""
	// BuildDate is ISO-8601 when set.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component in its own color.
// A pre-release or build suffix is appended plain. Colors follow
// color.NoColor, so piped output stays plain.
func Colored() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		return "dev"
	}
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2]) + suffix
}
