// Package catalog holds the static lookup tables that drive package
// resolution: the per-family package catalog (abstract tool → concrete
// package name, plus the package-manager command strings of each image
// family) and the registry of categories and profiles.
//
// All tables are read-only process-wide configuration, initialized once
// and never mutated. User extensions from a config file are applied by
// building a merged Registry copy, leaving the built-ins untouched.
package catalog
