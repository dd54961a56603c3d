/*
Package resilience implements the primitives every fabric call is wrapped
in, composed in a fixed order: Deadline, then Bulkhead, then CircuitBreaker,
then Retry.

A Deadline bounds how long the whole composed call — including every retry
attempt — is allowed to run. A Bulkhead, backed by golang.org/x/sync/
semaphore, caps how many attempts against one endpoint may be in flight at
once, so a slow downstream can't starve every other caller sharing the same
FabricClient. A CircuitBreaker, keyed per target endpoint, trips after a run
of consecutive failures and rejects calls outright while open, giving a
failing downstream service room to recover instead of being retried into
the ground. Retry then re-attempts an individual failed call within
whatever deadline and breaker budget remain, using bounded exponential
backoff with jitter and only for the FailureKinds
types.DefaultRetryableKinds marks retryable.

Resilient composes all of the above around a single operation so contract
client implementations (pkg/contracts, pkg/mock, pkg/gateway) never
hand-roll this ordering themselves.
*/
package resilience
