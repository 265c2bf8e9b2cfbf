// Package preflight provides readiness checks for everything a watch pass
// depends on: the target page, the state location, and the notification
// destinations.
//
// The CLI "pagewatch check" command runs RunAll and renders the results. The
// checks are read-only: the target is fetched once but state is never
// written and no notification is sent.
package preflight
