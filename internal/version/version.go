// Package version reports the build of the mincss binary.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time with -ldflags "-X bennypowers.dev/mincss/internal/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = "" // "dirty" for builds from a modified tree
)

// Info describes one build
type Info struct {
	Version   string `yaml:"version"`
	GitCommit string `yaml:"gitCommit"`
	GitTag    string `yaml:"gitTag"`
	BuildTime string `yaml:"buildTime"`
	Dirty     bool   `yaml:"dirty,omitempty"`
}

// Get returns the build information of the running binary
func Get() Info {
	return Info{
		Version:   resolve(),
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildTime: BuildTime,
		Dirty:     GitDirty == "dirty",
	}
}

// String returns the version, with the commit when it is known
func (i Info) String() string {
	if i.GitCommit == "unknown" || i.GitCommit == "" {
		return i.Version
	}
	return fmt.Sprintf("%s (commit: %s)", i.Version, i.GitCommit)
}

// resolve prefers the ldflags version, then the module version from build
// info, then one made from the git tag and short commit
func resolve() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "(devel)" && v != "" {
			return v
		}
	}

	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}
	v := GitTag
	short := GitCommit
	if len(short) > 7 {
		short = short[:7]
	}
	if short != "" && !strings.HasSuffix(GitTag, short) {
		v += "-" + short
	}
	if GitDirty == "dirty" {
		v += "-dirty"
	}
	return v
}
