// Package cli renders the suite in a terminal: the progress spinner, the
// per-run details, the comparison table, the YAML report and the shell
// completion scripts.
//
// # Naming Conventions
//
//   - Display* and Print* functions write formatted output to an [io.Writer].
//   - Format* functions return a string without performing I/O.
//   - Write* functions write files on the filesystem.
package cli
