// Package cli provides the interactive langmatch command-line client.
//
// It wires configuration, the gRPC client and an interactive REPL. Typical
// flow: set an access token (or mint a development one), create a profile,
// join the queue, request a partner and chat inside the match.
//
// Key features:
//   - token / register / profile / level / photo
//   - queue on|off, find, leave
//   - send / messages inside the current match
//   - history of past matches
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
