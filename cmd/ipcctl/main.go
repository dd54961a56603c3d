// Command ipcctl is the fabric's operator CLI: issue tokens, inspect
// circuit-breaker state, publish events onto the bus, and fire ad-hoc
// unary calls against a running ipcfabricd — the same four operations an
// operator needs when a fabric process is misbehaving and there's no
// chain engine or model registry client handy to reproduce it with.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lspecian/intellirouter/pkg/log"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "ipcctl",
	Short:   "IntelliRouter IPC fabric operator CLI",
	Long:    `ipcctl issues tokens, inspects circuit breakers, publishes events, and fires ad-hoc calls against a running ipcfabricd.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("ipcctl version %s\nCommit: %s\nBuilt: %s\n", Version, Commit, BuildTime))

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")
	log.Init(log.Config{Level: log.Level(logLevel), JSONOutput: logJSON})
}
