package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "devmon-demo",
		Short: "Demo server for the devmon device classifier",
		Long: `devmon-demo serves a page whose thin client reports viewport
changes over a WebSocket. The server-side Monitor classifies the
device (small/medium/large, portrait/landscape) and logs every
transition. Prometheus metrics are exposed on /metrics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// versionCmd prints build information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("devmon-demo %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
