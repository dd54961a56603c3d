// Package gateway is the fabric's composition root: it wires trust
// material, token service, authorizer, transport, resilience, and the six
// service contracts into ready-to-use clients and a single hostable
// server, the way cmd/warren's command constructors wire a manager,
// scheduler, and reconciler together before serving traffic.
//
// Builder assembles a Dispatcher fanning out transport.Dispatcher calls to
// whichever contracts.*Server implementations it was given (live, mock, or
// in-memory — the dispatcher only depends on the contracts interfaces).
// Builder.Dial returns a FabricClient: since the 34 operations across the
// six service contracts never collide on a method name, one concrete type
// satisfies every contracts.*Client interface at once, each call wrapped in
// a resilience.Policy drawn from the Builder's shared resilience.Registry
// so every client dialed to the same endpoint shares circuit-breaker
// state.
package gateway
