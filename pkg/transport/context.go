package transport

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/lspecian/intellirouter/pkg/types"
)

type contextKey int

const authTokenContextKey contextKey = 1

// ContextAuthToken returns the validated types.AuthToken the server's auth
// interceptor placed on ctx, if any.
func ContextAuthToken(ctx context.Context) (types.AuthToken, bool) {
	tok, ok := ctx.Value(authTokenContextKey).(types.AuthToken)
	return tok, ok
}

func withAuthToken(ctx context.Context, tok types.AuthToken) context.Context {
	return context.WithValue(ctx, authTokenContextKey, tok)
}

func methodFromContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	vals := md.Get(methodMetadataKey)
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func tokenFromContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	vals := md.Get(tokenMetadataKey)
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// OutgoingCallContext attaches method and token to ctx as outgoing gRPC
// metadata, used by Client.Call/CallStream.
func OutgoingCallContext(ctx context.Context, method, token string) context.Context {
	md := metadata.Pairs(methodMetadataKey, method)
	if token != "" {
		md.Set(tokenMetadataKey, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}
