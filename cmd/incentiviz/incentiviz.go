package main

import (
	"os"

	"github.com/beeport/incentiviz/cmd"
)

var (
	Version    = "dev"
	CommitHash = "unknown"
)

func main() {
	cmd.SetVersion(Version, CommitHash)
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
