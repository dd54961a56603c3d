package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lspecian/intellirouter/pkg/transport"
	"github.com/lspecian/intellirouter/pkg/types"
)

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Fire an ad-hoc unary call against a fabric method",
	Long: `call dials a fabric process over mutual TLS and invokes a single
method by name, bypassing pkg/contracts' typed request/response wrappers —
useful for probing a method's behavior or reproducing a failure when no
generated client is at hand. The payload is sent and received as opaque
bytes; the caller is responsible for matching whatever the target method's
wire.Marshal expects.

Example:
  ipcctl call --addr localhost:8443 \
      --cert client.pem --key client-key.pem --ca ca.pem \
      --server-name fabric.local --token "$TOKEN" --method ModelRegistry.FindModel \
      < find-model-request.bin`,
	RunE: runCall,
}

func init() {
	callCmd.Flags().String("addr", "", "Fabric process address (required)")
	callCmd.Flags().String("cert", "", "Client certificate path (required)")
	callCmd.Flags().String("key", "", "Client key path (required)")
	callCmd.Flags().String("ca", "", "CA certificate bundle path (required)")
	callCmd.Flags().String("server-name", "", "Expected server certificate name (required)")
	callCmd.Flags().String("token", "", "AuthToken to present with the call")
	callCmd.Flags().String("method", "", "Fully-qualified method name, e.g. ModelRegistry.FindModel (required)")
	callCmd.Flags().String("payload", "", "Request payload; reads stdin when omitted")
	callCmd.Flags().Duration("timeout", 10*time.Second, "Call deadline")
	for _, f := range []string{"addr", "cert", "key", "ca", "server-name", "method"} {
		_ = callCmd.MarkFlagRequired(f)
	}

	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	certPath, _ := cmd.Flags().GetString("cert")
	keyPath, _ := cmd.Flags().GetString("key")
	caPath, _ := cmd.Flags().GetString("ca")
	serverName, _ := cmd.Flags().GetString("server-name")
	token, _ := cmd.Flags().GetString("token")
	method, _ := cmd.Flags().GetString("method")
	payload, _ := cmd.Flags().GetString("payload")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	trust, err := loadTrustMaterial(certPath, keyPath, caPath)
	if err != nil {
		return err
	}

	if payload == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read payload from stdin: %w", err)
		}
		payload = string(raw)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := transport.Dial(ctx, addr, trust, serverName)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer client.Close()

	resp, err := client.Call(ctx, method, token, types.CallEnvelope{Token: token, Payload: []byte(payload)})
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}

	fmt.Println(string(resp.Payload))
	return nil
}

func loadTrustMaterial(certPath, keyPath, caPath string) (types.TrustMaterial, error) {
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return types.TrustMaterial{}, fmt.Errorf("read cert %s: %w", certPath, err)
	}
	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return types.TrustMaterial{}, fmt.Errorf("read key %s: %w", keyPath, err)
	}
	caPEM, err := os.ReadFile(caPath)
	if err != nil {
		return types.TrustMaterial{}, fmt.Errorf("read ca %s: %w", caPath, err)
	}
	return types.TrustMaterial{CertPEM: certPEM, KeyPEM: keyPEM, CACertPEM: caPEM}, nil
}
