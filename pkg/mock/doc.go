// Package mock provides deterministic in-memory implementations of every
// pkg/contracts client surface (per spec §4.9): each constructor builds
// tables of canned outcomes keyed by request-id or input fingerprint, filled
// in with Set, and an unmatched key falls back to the table's default
// outcome. Streaming
// operations accept an ordered script of events plus a terminating error
// (nil meaning the stream ended without error).
//
// Because every mock type here satisfies the same contracts.*Client
// interface its live counterpart does, tests substitute one for the other
// at construction time — no type assertion or runtime downcast needed,
// matching the "trait-object-over-transport polymorphism" guidance the
// fabric's design notes call for.
package mock
