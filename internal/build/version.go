package build

import "fmt"

// Set at link time with -ldflags "-X github.com/rohmanhakim/digester/internal/build.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// Banner is the one-line identification printed by the version command.
func Banner(program string) string {
	return fmt.Sprintf("%s %s (built %s)", program, FullVersion(), BuildTime)
}
