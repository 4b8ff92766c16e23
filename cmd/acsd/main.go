// Acsd is a CWMP (TR-069) Auto Configuration Server.
//
// CPEs connect over HTTP and are sent the configured command queue once
// they have no more requests of their own. Parameter lists the CPEs
// report are stored in SQLite.
//
// Usage:
//
//	acsd serve [flags]
//	acsd version
package main

import (
	"fmt"
	"os"

	"github.com/andaru/acs/version"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "acsd",
		Short:         "CWMP Auto Configuration Server",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Product())
		},
	}
}
