// Package notify posts desktop notifications for capture outcomes.
//
// The primary backend is org.freedesktop.Notifications over the session bus;
// when the bus is unreachable it falls back to beeep's platform shims. A noop
// implementation backs the disabled state so callers never branch on
// configuration. Delivery is fire-and-forget: failures are surfaced to the
// logger only and never change the process exit status.
package notify
