package sendwithus

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version information for the client library.
// Version can be overridden at build time via ldflags.
var (
	// Version is the semantic version of the library, sent in the client header.
	Version = "1.0.0"
)

// Client identification.
const (
	// ClientLanguage is the language tag sent in the client identification header.
	ClientLanguage = "golang"

	// ClientName is the library name used in the User-Agent.
	ClientName = "sendwithus-go"

	// HeaderAPIKey carries the API key on every request.
	HeaderAPIKey = "X-SWU-API-KEY"

	// HeaderAPIClient identifies the client library on every request.
	HeaderAPIClient = "X-SWU-API-CLIENT"
)

// VersionInfo contains detailed version information.
type VersionInfo struct {
	// Version is the semantic version of the library.
	Version string `json:"version"`

	// GoVersion is the Go version used for building.
	GoVersion string `json:"go_version"`

	// Platform is the target platform (GOOS/GOARCH).
	Platform string `json:"platform"`

	// Module is the module path of the main binary, when build info is available.
	Module string `json:"module,omitempty"`
}

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetVersionInfo returns detailed version information.
func GetVersionInfo() *VersionInfo {
	info := &VersionInfo{
		Version:   Version,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok && buildInfo.Main.Path != "" {
		info.Module = buildInfo.Main.Path
	}

	return info
}

// ClientHeader returns the X-SWU-API-CLIENT value, e.g. "golang-1.0.0".
func (v *VersionInfo) ClientHeader() string {
	return ClientLanguage + "-" + v.Version
}

// UserAgent returns a user agent string for HTTP requests.
func (v *VersionInfo) UserAgent() string {
	return fmt.Sprintf("%s/%s (%s)", ClientName, v.Version, v.Platform)
}
