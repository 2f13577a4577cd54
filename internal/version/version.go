package version

import "fmt"

// CliVersion is the release version, overwritten at build time with
// -ldflags "-X github.com/heyandras/gridwatch/internal/version.CliVersion=..."
var CliVersion = "0.1.0"

// String returns the version line printed by `gridwatch version`
func String() string {
	return fmt.Sprintf("gridwatch version %s", CliVersion)
}
