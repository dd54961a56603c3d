/*
Package eventbus implements the fabric's typed asynchronous publish/
subscribe layer. Publish and Subscribe operate on types.Channel names
built from the "intellirouter:{source}:{destination}:{kind}" grammar;
payloads cross the wire exactly as a CallEnvelope, the same shape Publish
uses for a unary call, serialized with pkg/wire.

Two Broker implementations satisfy the Broker interface:

  - InProcessBroker, adapted from a single-process fan-out pattern, for
    tests and single-binary deployments with no external dependency.
  - RedisBroker, backed by github.com/redis/go-redis/v9 PUBLISH/SUBSCRIBE
    (and PSUBSCRIBE for pattern channels), for cross-process delivery.

Supervisor wraps a RedisBroker subscription with reconnect-with-backoff so
a subscriber survives a transient broker outage without the caller having
to re-issue Subscribe.

RateLimitedBroker optionally wraps any Broker with a golang.org/x/time/rate
token-bucket limiter on the publish side, left disabled (nil limiter) by
default since the spec leaves publish rate limiting unquantified.
*/
package eventbus
