package cmd

import (
	"github.com/spf13/cobra"

	"github.com/beeport/incentiviz/config"
	"github.com/beeport/incentiviz/types"
)

// Exit statuses, distinguishing the spec'd failure classes.
const (
	ExitGeneric    = 1
	ExitConnection = 2
	ExitNoData     = 3
	ExitExport     = 4
)

func SetVersion(v, commit string) {
	config.SetBuildInfo(v, commit)
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "incentiviz",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(plotCmd())
	cmd.AddCommand(serveCmd())

	return cmd
}

// ExitCode maps a pipeline error onto the process exit status so callers can
// tell "no data" from "fetch failure" from "export failure".
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch types.TypeOf(err) {
	case types.ErrTypeConnection, types.ErrTypeDatabase:
		return ExitConnection
	case types.ErrTypeNoData:
		return ExitNoData
	case types.ErrTypeExport, types.ErrTypeRender:
		return ExitExport
	default:
		return ExitGeneric
	}
}
