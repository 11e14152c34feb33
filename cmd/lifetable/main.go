// Command lifetable integrates life-expectancy observations from six
// independent sources into one canonical dataset keyed by (country, year),
// and reports cross-source data quality and methodology conflicts.
package main

import "github.com/agentstation/lifetable/cmd/lifetable/cmd"

// Version information set by the build system.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
