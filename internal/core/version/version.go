// Package version reports build metadata stamped in with -ldflags
package version

import "runtime/debug"

// BuildInfo describes the running binary
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// set with
// -ldflags "-X artisantrend/internal/core/version.version=v0.1.0 -X artisantrend/internal/core/version.commit=abcd -X artisantrend/internal/core/version.date=2026-01-02"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns build metadata for service
func Info(service string) BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	if b, ok := debug.ReadBuildInfo(); ok && b != nil {
		bi.GoVersion = b.GoVersion
	}
	return bi
}

// String is a one-line form for -version flags
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}
