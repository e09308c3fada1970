/*
Package main is the entry point for the batepapo chat server.

Running the binary without a subcommand starts the HTTP server. The migrate subcommand applies the
PostgreSQL schema without serving traffic, and version prints build information.

	batepapo            # same as batepapo serve
	batepapo serve
	batepapo migrate
	batepapo version
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "batepapo",
	Short: "A single-room chat server",
	Long: `batepapo is a single-room chat server.

Participants join by name, post public or private messages, poll the history
and send heartbeats. Participants who stop sending heartbeats are removed and
announced as having left.

Configuration is read from environment variables, optionally seeded from a .env file.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "batepapo %s (commit %s)\n", version, commit)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
