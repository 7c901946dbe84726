// Package cli provides the interactive podlift command-line client.
//
// It wires configuration, the local snapshot store, the REST client, and an
// interactive REPL that supports online and read-only offline operation.
// Typical flow: resume or prompt for credentials, start a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - Login / Logout with session resume between runs
//   - List / Show campaigns, media kits, placements, pitches, questionnaires
//   - Section-scoped editing with local validation before anything is sent
//   - Placement pipeline advancement
//   - Offline viewing from the last fetched snapshots
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
