// Package health provides liveness and readiness probes.
//
// Checks are plain func(context.Context) error closures, such as the SSR
// sidecar ping or a manifest source probe. They run in parallel under a
// shared timeout (5s by default):
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "renderer": renderer.Ping,
//	}, health.WithTimeout(2*time.Second)))
//
// Probes answer in plain text ("OK", or "Service Unavailable: " followed by
// the failing check names). Pass ?format=json or Accept: application/json to
// get the per-check report:
//
//	{"status":"unhealthy","checks":{"renderer":{"status":"unhealthy","error":"connection refused"}}}
//
// Run executes checks outside of HTTP, for example from a CLI command.
package health
