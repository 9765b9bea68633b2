package config

import "fmt"

// Build arguments, overridden via ldflags at build time:
// go build -ldflags "-X github/vaultbridge/hw-wallet/internal/config.Commit=$(git rev-parse HEAD) ..."
var (
	ModuleNameArg = ModuleName
	Commit        = "unknown"
	BuildDate     = "unknown"
)

// GetFormattedBuildArgs returns the build arguments in the form "<name> @ <commit> (<buildDate>)".
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleNameArg, Commit, BuildDate)
}
