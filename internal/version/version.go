// ABOUTME: Version constants for gibberlink
// ABOUTME: Reported by --version and the terminal UI header
package version

// Version is overridden at link time with -ldflags "-X .../internal/version.Version=..."
var Version = "0.3.0"

const (
	Product      = "gibberlink"
	Manufacturer = "harperreed"
)

// String returns "gibberlink 0.3.0"
func String() string {
	return Product + " " + Version
}
