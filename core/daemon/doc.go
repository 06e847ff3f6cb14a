// Package daemon runs reconciliation passes on a fixed interval.
//
// Every pass reloads the declared state file, so edits take effect on the
// next tick without a restart. A file that fails to load skips that pass
// and the daemon keeps running; it never reconciles from stale declared
// state. Pass outcomes are recorded into a status.Tracker for the status
// server to expose.
package daemon
