/*
Package types defines the core data model shared by every layer of the
IntelliRouter IPC fabric: service identities, signed tokens, trust material,
request context, the call envelope, channel names, and the IpcFailure
taxonomy.

These are plain data structures with no transport or serialization logic of
their own; pkg/wire encodes them on the wire, pkg/security issues and
validates AuthToken, pkg/transport and pkg/eventbus move CallEnvelope and
Channel traffic, and pkg/resilience mutates CircuitBreakerState.
*/
package types
