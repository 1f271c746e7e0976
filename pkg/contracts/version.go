package contracts

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const (
	// Version is the application release
	Version = "1.0.0"

	// ReportFormatVersion changes whenever the results workbook layout does
	ReportFormatVersion = "v1"

	// APIVersion prefixes the HTTP routes
	APIVersion = "v1"
)

// Set with -ldflags "-X hotelcomp/pkg/contracts.GitCommit=..." at release
// time. Development builds fall back to the VCS stamp in the binary.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo is served by /api/version and printed by the CLI
type VersionInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	Platform     string `json:"platform"`
	ReportFormat string `json:"report_format"`
	APIVersion   string `json:"api_version"`
}

// GetVersionInfo collects the build metadata
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		Platform:     runtime.GOOS + "/" + runtime.GOARCH,
		ReportFormat: ReportFormatVersion,
		APIVersion:   APIVersion,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "unknown":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "unknown":
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// GetFullVersionString renders the version for humans
func GetFullVersionString() string {
	info := GetVersionInfo()
	return fmt.Sprintf("Hotel Comparable Matcher v%s (report %s, commit %s, built %s, %s %s)",
		info.Version, info.ReportFormat, info.GitCommit, info.BuildTime, info.GoVersion, info.Platform)
}
