// Package capture orchestrates one screenshot: resolve a destination, hold
// the single-capture lock, ask the portal, relocate the temp file, and record
// the outcome. The portal and the history store sit behind small interfaces
// so the flow is testable without a session bus.
package capture
