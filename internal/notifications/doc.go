// Package notifications delivers watcher events to the configured
// destinations.
//
// Destinations are opaque URIs parsed from one comma or newline separated
// string. Each URI scheme maps to a transport: ntfy/ntfys/http/https publish to
// an ntfy topic, tgram sends a Telegram message through a bot token, and
// mailto/mailtos sends mail over SMTP. Delivery fans out to every destination;
// one failure never stops the others, and the caller gets a single joined
// error tagged with services.ErrNotificationDelivery.
//
// With no destinations NewService returns a service that only logs, so an
// operator can see why nothing arrived.
package notifications
