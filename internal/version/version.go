// Package version exposes the build-time version string.
package version

// version is stamped at build time via -ldflags.
var version = ""

// Value returns the stamped version, or a development default.
func Value() string {
	if version == "" {
		return "v0.0.0-dev"
	}
	return version
}
