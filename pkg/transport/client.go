package transport

import (
	"context"
	"errors"
	"io"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/lspecian/intellirouter/pkg/ipcerr"
	"github.com/lspecian/intellirouter/pkg/metrics"
	"github.com/lspecian/intellirouter/pkg/security"
	"github.com/lspecian/intellirouter/pkg/types"
	"github.com/lspecian/intellirouter/pkg/wire"
)

// Client dials a single fabric Server over mutual TLS and invokes its
// generic Invoke/InvokeStream RPCs on behalf of a typed contract client in
// pkg/contracts.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to addr using the given trust material, verifying the
// server's certificate chains to the CA bundle and matches serverName.
func Dial(ctx context.Context, addr string, trust types.TrustMaterial, serverName string) (*Client, error) {
	tlsConfig, err := security.ClientTLSConfig(trust, serverName)
	if err != nil {
		return nil, err
	}
	creds := credentials.NewTLS(tlsConfig)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, types.NewFailure(types.FailureConnection, "dial "+addr, err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error { return c.conn.Close() }

// Call invokes method as a unary RPC with req as the request payload,
// returning the response envelope or an IpcFailure classifying what went
// wrong.
func (c *Client) Call(ctx context.Context, method, token string, req types.CallEnvelope) (types.CallEnvelope, error) {
	start := time.Now()
	ctx = OutgoingCallContext(ctx, method, token)
	var resp wire.Envelope
	err := c.conn.Invoke(ctx, "/"+serviceName+"/Invoke", &wire.Envelope{CallEnvelope: req}, &resp, grpc.CallContentSubtype(wire.CodecName()))
	if err != nil {
		err = ipcerr.FromStatus(err)
		metrics.ObserveCallDuration(method, time.Since(start), err)
		return types.CallEnvelope{}, err
	}
	metrics.ObserveCallDuration(method, time.Since(start), nil)
	return resp.CallEnvelope, nil
}

// CallStream opens method as a server-streaming RPC, delivering each
// response envelope to onEnvelope until the stream ends or ctx is done.
// onEnvelope returning an error aborts the stream.
func (c *Client) CallStream(ctx context.Context, method, token string, req types.CallEnvelope, onEnvelope func(types.CallEnvelope) error) error {
	start := time.Now()
	ctx = OutgoingCallContext(ctx, method, token)
	desc := &grpc.StreamDesc{StreamName: "InvokeStream", ServerStreams: true}
	stream, err := c.conn.NewStream(ctx, desc, "/"+serviceName+"/InvokeStream", grpc.CallContentSubtype(wire.CodecName()))
	if err != nil {
		err = ipcerr.FromStatus(err)
		metrics.ObserveCallDuration(method, time.Since(start), err)
		return err
	}
	if err := stream.SendMsg(&wire.Envelope{CallEnvelope: req}); err != nil {
		err = ipcerr.FromStatus(err)
		metrics.ObserveCallDuration(method, time.Since(start), err)
		return err
	}
	if err := stream.CloseSend(); err != nil {
		err = ipcerr.FromStatus(err)
		metrics.ObserveCallDuration(method, time.Since(start), err)
		return err
	}

	for {
		var env wire.Envelope
		if err := stream.RecvMsg(&env); err != nil {
			if errors.Is(err, io.EOF) {
				metrics.ObserveCallDuration(method, time.Since(start), nil)
				return nil
			}
			err = ipcerr.FromStatus(err)
			metrics.ObserveCallDuration(method, time.Since(start), err)
			return err
		}
		metrics.StreamItemsTotal.WithLabelValues(method).Inc()
		if err := onEnvelope(env.CallEnvelope); err != nil {
			metrics.ObserveCallDuration(method, time.Since(start), err)
			return err
		}
	}
}
