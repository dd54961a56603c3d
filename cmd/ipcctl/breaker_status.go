package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lspecian/intellirouter/pkg/types"
)

var breakerStatusCmd = &cobra.Command{
	Use:   "breaker-status",
	Short: "Report a fabric process's circuit breaker states",
	Long: `breaker-status fetches /ready from a running ipcfabricd's metrics
endpoint and prints each endpoint's circuit breaker state, surfacing an
open breaker before its cooldown lets a caller notice by failed calls.

Example:
  ipcctl breaker-status --addr localhost:9090`,
	RunE: runBreakerStatus,
}

func init() {
	breakerStatusCmd.Flags().String("addr", "localhost:9090", "Fabric process's metrics/health address")
	rootCmd.AddCommand(breakerStatusCmd)
}

type readyResponse struct {
	Status    string                                `json:"status"`
	Timestamp time.Time                             `json:"timestamp"`
	Breakers  map[string]types.CircuitBreakerState `json:"breakers"`
}

func runBreakerStatus(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + addr + "/ready")
	if err != nil {
		return fmt.Errorf("fetch readiness: %w", err)
	}
	defer resp.Body.Close()

	var ready readyResponse
	if err := json.NewDecoder(resp.Body).Decode(&ready); err != nil {
		return fmt.Errorf("decode readiness response: %w", err)
	}

	fmt.Printf("status: %s (as of %s)\n", ready.Status, ready.Timestamp.Format(time.RFC3339))
	if len(ready.Breakers) == 0 {
		fmt.Println("no breakers registered yet")
		return nil
	}
	for endpoint, state := range ready.Breakers {
		fmt.Printf("  %-30s %-10s failures=%d probes_remaining=%d\n", endpoint, state.State, state.ConsecutiveFailures, state.ProbeAllowance)
	}
	return nil
}
