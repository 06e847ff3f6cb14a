// Package status serves the daemon's observability endpoints.
//
// The server carries two routes: /healthz answers liveness probes and
// /status returns the full report of the most recent reconciliation pass,
// including per-instance differences and failed entity kinds. The daemon
// records a report into the Tracker after every pass; the server only ever
// reads.
//
// # Usage
//
//	tracker := status.NewTracker()
//	srv := status.NewServer(":9090", tracker, log)
//	go srv.Start()
//	defer srv.Shutdown(ctx)
package status
