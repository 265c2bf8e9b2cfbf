// Package services defines shared utilities consumed by the watcher
// components (extractor, state store, reconciler, notifier).
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and component names for logging.
//   - Structured error markers plus the Wrap helper that classify failures as
//     extraction, state I/O, notification delivery, or configuration errors.
//
// The reconciler branches on these markers with errors.Is, so every component
// should tag the errors it returns instead of inventing new string formats.
package services
