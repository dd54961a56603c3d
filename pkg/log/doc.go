/*
Package log provides structured logging for the IPC fabric using zerolog.

A package-level Logger is configured once via Init by the binaries
(cmd/ipcfabricd, cmd/ipcctl), which hand component-scoped child loggers to
the packages that log (pkg/eventbus takes a zerolog.Logger from its caller).

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})

	transportLog := log.WithComponent("transport")
	transportLog.Info().Msg("server listening")

	callLog := log.WithEndpoint("model-registry:9443").
		With().Str("request_id", reqCtx.RequestID).Logger()
	callLog.Warn().Msg("circuit breaker opened")

WithRequestID and WithEndpoint exist because those are the two identifiers
every fabric log line benefits from correlating on: which logical call
produced it, and which remote target it concerns.
*/
package log
