// Package main hosts the pagewatch CLI entrypoint and command graph.
//
// `pagewatch run` performs one watch pass and is meant to be scheduled by
// cron or a systemd timer. The remaining commands inspect or reset the
// recorded state, scaffold configuration, check readiness, and send a test
// notification.
//
// Keep this package lean: behaviour lives in the internal packages and is
// surfaced here through commands and flags.
package main
