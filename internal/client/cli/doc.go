// Package cli provides the interactive PromptBook command-line client.
//
// It wires configuration, the local session database, the backend client and
// the session, prompt and navigation services, then runs a REPL whose
// commands stand in for the screens of the prompt library: login, dashboard,
// favorites, library, detail, editor and settings.
//
// Key features:
//   - Register / Login / OAuth / Logout
//   - Search and filter by category on the list screens
//   - Open, create, edit, favorite and delete prompts
//   - Connectivity watcher showing online / offline in the prompt
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
