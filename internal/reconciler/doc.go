// Package reconciler runs one watch pass: extract the current signal, compare
// it with the recorded one, persist the new value, and notify on change.
//
// The pass resolves to exactly one Outcome. Extraction failures never touch
// state. State is written before any notification is attempted, so a delivery
// failure can never cause a duplicate alert on the next run, and a write
// failure aborts the pass before anything is sent.
package reconciler
