/*
Package contracts declares the six service surfaces the fabric exists to
carry: Chain Engine, Model Registry, Memory, RAG Manager, Persona Layer, and
Router. Each surface is split into a Client interface (what a consumer may
invoke) and a Server interface (what an implementer must provide); both are
polymorphic over transport, in-memory, and mock implementations (pkg/mock,
pkg/gateway) — nothing here assumes a particular wire.

Request and response shapes implement wire.Message using the same
protowire-based FieldWriter/WalkFields codec pkg/wire's own shapes use, so
the forward-compatibility rules in spec §6 (never renumber, reserve removed
fields, additive evolution) apply uniformly across the fabric's payloads.

Every operation is registered under a logical method name
("ModelRegistry.FindModel", "ChainEngine.ExecuteChain", ...) used both as the
pkg/transport dispatch key and as the lookup key into a Roles map declaring
the caller roles that operation requires. IdempotenceClass tags each
operation per §4.7; pkg/resilience's retry policy does not read it and
decides whether to retry from the failure kind alone.
*/
package contracts
