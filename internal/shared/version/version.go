// Package version holds build information set with -ldflags, for example
// -X github.com/orris-inc/docforge/internal/shared/version.Version=1.2.0.
package version

import (
	"runtime"
	"strings"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

func Get() Info {
	return Info{
		Version:   Normalize(Version),
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// Normalize adds a "v" prefix to release versions: "1.2.3" -> "v1.2.3".
// "dev" and empty strings are returned unchanged.
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" || version == "dev" || strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
