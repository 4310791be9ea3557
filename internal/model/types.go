// Package model defines the domain types for the devimage CLI.
//
// A devimage invocation is described by a BuildConfig plus the identifiers
// the user selected (profiles and categories). Identifiers are typed strings
// rather than bare strings so that the built-in tables in internal/catalog
// can be declared with named constants and typos surface at compile time.
package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ImageFamily groups container base images that share a package manager
// and user-management convention. Two families exist today:
//
//	alpine → apk, adduser (BusyBox)
//	debian → apt-get, useradd
//
// Any base image whose identifier does not match the Alpine family is
// treated as Debian-like. This is the fallback contract: the generator
// never refuses a base image, it only warns when the image is outside
// the tested set.
type ImageFamily string

const (
	// FamilyAlpine covers alpine:* base images.
	FamilyAlpine ImageFamily = "alpine"

	// FamilyDebian covers debian:* base images and is the fallback for
	// every image identifier that is not recognizably Alpine.
	FamilyDebian ImageFamily = "debian"
)

// String returns the string representation of ImageFamily.
func (f ImageFamily) String() string {
	return string(f)
}

// IsValid checks whether the ImageFamily value is one of the
// predefined families.
func (f ImageFamily) IsValid() bool {
	switch f {
	case FamilyAlpine, FamilyDebian:
		return true
	default:
		return false
	}
}

// ParseImageFamily converts a string to an ImageFamily.
// Returns an error if the string does not match any valid family.
func ParseImageFamily(s string) (ImageFamily, error) {
	family := ImageFamily(strings.ToLower(s))
	if !family.IsValid() {
		return "", fmt.Errorf("invalid image family: %q (valid: alpine, debian)", s)
	}
	return family, nil
}

// DetectFamily maps a base image identifier to its ImageFamily.
// Selection is by prefix match: "alpine..." selects the Alpine family,
// everything else falls back to the Debian family.
func DetectFamily(baseImage string) ImageFamily {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(baseImage)), "alpine") {
		return FamilyAlpine
	}
	return FamilyDebian
}

// Profile is a named bundle of categories representing a development stack
// (e.g. webdev). Profiles exist only as keys into the profile registry.
type Profile string

// Category is a named bundle of abstract tools representing a functional
// area (e.g. database). Categories exist only as keys into the category
// registry.
type Category string

// Tool is an abstract capability identifier, resolved to a concrete
// package name per image family by the package catalog.
type Tool string

// Reserved identifiers for the built-in tables. ProfileTest and
// CategoryTest form the smoke-test fixture: selecting the test profile
// exercises the whole resolution pipeline with a minimal fixed package set.
const (
	ProfileWebDev      Profile = "webdev"
	ProfileBackend     Profile = "backend"
	ProfileDataScience Profile = "datascience"
	ProfileSystems     Profile = "systems"
	ProfileTest        Profile = "test"

	CategoryEditors  Category = "editors"
	CategoryBuild    Category = "build"
	CategoryPython   Category = "python"
	CategoryNode     Category = "node"
	CategoryGo       Category = "go"
	CategoryDatabase Category = "database"
	CategoryNetwork  Category = "network"
	CategoryUtils    Category = "utils"
	CategoryTest     Category = "test"
)

// Shell paths per family and zsh selection. The chosen shell feeds both
// the user-creation instruction and the final CMD instruction.
const (
	// ShellZsh is used whenever the zsh option is enabled, on any family.
	ShellZsh = "/bin/zsh"

	// ShellMinimal is the BusyBox shell used on Alpine without zsh.
	ShellMinimal = "/bin/sh"

	// ShellStandard is the default shell on Debian-like images without zsh.
	ShellStandard = "/bin/bash"
)

// BuildConfig fully determines the Renderer output together with the
// resolved package set. It is constructed per invocation from CLI flags
// and discarded after rendering.
type BuildConfig struct {
	// BaseImage is the container base image identifier, referenced
	// verbatim by the FROM instruction (e.g. "alpine:3.18").
	BaseImage string

	// User is the name of the non-root user created in the image.
	User string

	// UID is the numeric user id for the created user. Always
	// non-negative; validated by ParseUID before a BuildConfig exists.
	UID int

	// WorkDir is the working directory inside the image. The build
	// context is copied here with recursive ownership.
	WorkDir string

	// Zsh enables the zsh shell, the Oh-My-Zsh installation block, and
	// the zsh package in the resolved set.
	Zsh bool
}

// Family returns the image family active for this configuration.
func (c *BuildConfig) Family() ImageFamily {
	return DetectFamily(c.BaseImage)
}

// Shell returns the default shell path for this configuration:
// zsh when enabled, the minimal shell on Alpine, the standard shell
// otherwise.
func (c *BuildConfig) Shell() string {
	switch {
	case c.Zsh:
		return ShellZsh
	case c.Family() == FamilyAlpine:
		return ShellMinimal
	default:
		return ShellStandard
	}
}

// Home returns the home directory of the configured user.
func (c *BuildConfig) Home() string {
	return "/home/" + c.User
}

// ImageTag returns the tag used when building and running the image.
func (c *BuildConfig) ImageTag() string {
	return c.User + "_container:latest"
}

// uidRegex validates uid strings: one or more ASCII digits, nothing else.
var uidRegex = regexp.MustCompile(`^[0-9]+$`)

// ParseUID validates and converts a uid flag value. Surrounding whitespace
// is trimmed first; the remainder must be all digits. Any other form is a
// fatal validation error raised before resolution begins.
func ParseUID(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if !uidRegex.MatchString(trimmed) {
		return 0, fmt.Errorf("invalid uid %q: must be a non-negative integer", s)
	}
	uid, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid uid %q: %w", s, err)
	}
	return uid, nil
}

// ExitCode defines the CLI exit codes. The contract is deliberately
// narrow: 0 on success, 1 on any failure (validation, generation, missing
// engine, build, run). Warnings never change the exit code.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitFailure indicates any fatal error: invalid uid, Dockerfile
	// write failure, missing container engine, build or run failure.
	ExitFailure ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
