// Package cli defines the Cobra command tree for the gentypings CLI. Each file
// in this package registers one top-level command with the root command.
// Commands parse flags and format output; the work itself happens in the
// internal packages.
package cli
