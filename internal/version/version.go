// Package version holds build metadata stamped in at link time:
//
//	go build -ldflags "\
//	  -X plume/internal/version.Version=1.2.0 \
//	  -X plume/internal/version.GitCommit=$(git rev-parse --short HEAD) \
//	  -X plume/internal/version.BuildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var segmentColors = []*color.Color{
	color.New(color.FgMagenta, color.Bold),
	color.New(color.FgCyan, color.Bold),
	color.New(color.FgWhite, color.Bold),
}

// Colored renders Version with each dotted segment tinted for terminal
// output. A pre-release suffix after '-' stays plain.
func Colored() string {
	base, suffix, _ := strings.Cut(Version, "-")
	segments := strings.Split(base, ".")
	for i, seg := range segments {
		segments[i] = segmentColors[i%len(segmentColors)].Sprint(seg)
	}
	out := strings.Join(segments, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
