// Package saver relocates the portal's temporary screenshot into its final
// destination.
//
// The portal writes captures to temp storage that is frequently a different
// mount than the user's pictures directory, so the move compares filesystem
// device IDs and picks between an atomic rename (same device) and a
// copy-then-delete (across devices). Failures report the exact sub-step that
// broke; a capture URI with a non-file scheme is rejected before anything on
// disk is touched.
package saver
