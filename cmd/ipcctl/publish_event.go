package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lspecian/intellirouter/pkg/eventbus"
	"github.com/lspecian/intellirouter/pkg/log"
	"github.com/lspecian/intellirouter/pkg/types"
)

var publishEventCmd = &cobra.Command{
	Use:   "publish-event",
	Short: "Publish a raw event onto a fabric channel",
	Long: `publish-event PUBLISHes a payload onto a source/destination/kind channel
via Redis, the same wire shape a service's own eventbus.Publish call would
use — handy for replaying a notification or nudging a subscriber during an
incident without a custom client.

Payload comes from --payload, or stdin when --payload is omitted.

Example:
  echo -n '{"status":"degraded"}' | ipcctl publish-event \
      --broker-url localhost:6379 --source router --destination operator --kind alert`,
	RunE: runPublishEvent,
}

func init() {
	publishEventCmd.Flags().String("broker-url", "localhost:6379", "Redis broker address")
	publishEventCmd.Flags().String("source", "", "Channel source component (required)")
	publishEventCmd.Flags().String("destination", "", "Channel destination component (required)")
	publishEventCmd.Flags().String("kind", "", "Channel event kind (required)")
	publishEventCmd.Flags().String("token", "", "Token to stamp on the envelope, if any")
	publishEventCmd.Flags().String("payload", "", "Event payload; reads stdin when omitted")
	_ = publishEventCmd.MarkFlagRequired("source")
	_ = publishEventCmd.MarkFlagRequired("destination")
	_ = publishEventCmd.MarkFlagRequired("kind")

	rootCmd.AddCommand(publishEventCmd)
}

func runPublishEvent(cmd *cobra.Command, args []string) error {
	brokerURL, _ := cmd.Flags().GetString("broker-url")
	source, _ := cmd.Flags().GetString("source")
	destination, _ := cmd.Flags().GetString("destination")
	kind, _ := cmd.Flags().GetString("kind")
	token, _ := cmd.Flags().GetString("token")
	payload, _ := cmd.Flags().GetString("payload")

	if payload == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read payload from stdin: %w", err)
		}
		payload = string(raw)
	}

	channel, err := types.NewChannel(source, destination, kind)
	if err != nil {
		return fmt.Errorf("build channel: %w", err)
	}

	cfg := eventbus.DefaultRedisConfig()
	cfg.Addr = brokerURL
	broker, err := eventbus.NewRedisBroker(context.Background(), cfg, log.Logger)
	if err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}
	defer broker.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := broker.Publish(ctx, channel, types.CallEnvelope{Token: token, Payload: []byte(payload)}); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "published %d bytes on %s\n", len(payload), channel.String())
	return nil
}
