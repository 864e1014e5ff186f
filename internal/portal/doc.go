// Package portal implements a client for the XDG desktop Screenshot portal.
//
// The portal flow is asynchronous on the bus: the Screenshot method returns a
// Request object path, and the actual result arrives later as that object's
// Response signal carrying a response code and the capture URI. This package
// hides the dance behind a single blocking call that honors context
// cancellation and reports user cancellation as ErrCancelled rather than a
// failure.
package portal
