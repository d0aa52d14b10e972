// Package git wraps the go-git primitives this tool orchestrates: opening a
// local repository, fetching a single branch from a configured remote,
// comparing the local branch tip against the fetched remote tip, and
// fast-forwarding the local branch when the remote is ahead.
//
// The package provides:
//   - A shared repository handle opened once per invocation
//   - Single-branch fetch (no tags) with pluggable authentication
//   - Tip comparison against the remote-tracking reference
//   - Fast-forward merge with divergence detection
//   - Typed errors for structured error handling
package git
