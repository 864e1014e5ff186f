// Package history records capture attempts in a small SQLite database so the
// CLI can answer "where did that screenshot go". Saved, cancelled, and failed
// captures are all recorded; pruning after each insert keeps the database
// bounded. The feature is optional and the capture path treats every store
// error as non-fatal.
package history
