/*
Package transport carries CallEnvelope traffic over a single generic gRPC
service, "intellirouter.Fabric", rather than over per-contract
protoc-generated stubs: one unary RPC (Invoke) and one server-streaming RPC
(InvokeStream), both keyed by a logical method name carried in gRPC
metadata. pkg/contracts and pkg/gateway build typed client/server surfaces
on top of this generic transport by (de)serializing their own request and
response shapes through pkg/wire into the CallEnvelope's payload.

This keeps the module free of protoc/codegen while still being "real"
gRPC: mutual TLS via credentials.NewTLS, deadline propagation via
context.Context, and true server-streaming all come from
google.golang.org/grpc as usual. Every RPC on the server side passes
through authCheck's unary or stream interceptor, which validates the bearer token in the
"authorization" metadata key and checks it against the roles the method
requires before the Dispatcher ever sees the call.
*/
package transport
