// Package model defines the domain types and value objects for the
// devimage CLI.
//
// This package contains pure data structures with no external dependencies.
// The core entities (ImageFamily, Profile, Category, Tool, BuildConfig)
// are transient representations constructed per invocation — there are no
// persistent state files.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
