// Package cli implements the cobra-based command surface for devimage.
//
// devimage is a single-operation tool, so the root command itself runs
// the generate pipeline; there are no subcommands. This file defines the
// root command, flag binding, and the error/exit-code handling shared
// with main.go.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/devimage/internal/model"
)

// verbose enables detailed logging output for debugging.
// When true, additional information about operations is printed to stderr.
var verbose bool

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// warnColor renders advisory warnings. Warnings go to stderr so stdout
// stays clean for --dry-run output.
var warnColor = color.New(color.FgYellow)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	flags := &generateFlags{}

	rootCmd := &cobra.Command{
		Use:   "devimage",
		Short: "Generate development-environment Dockerfiles from profiles",
		Long: `devimage generates a Dockerfile from a declarative selection of development
profiles and categories, translating abstract tool names into the package
names of the chosen base image family (Alpine-like or Debian-like).

Optionally, the resulting image is built and run with the first container
engine found on PATH (docker, then podman).

Examples:
  devimage --profile webdev
  devimage --base debian:12 --categories "build database"
  devimage --profile datascience --zsh --dry-run
  devimage --profile backend --build-run`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves in Execute.
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// The tool takes no positional arguments; everything is flags.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), flags)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.Flags().StringVar(&flags.base, "base", "alpine:3.18", "Base image for the generated Dockerfile")
	rootCmd.Flags().StringArrayVar(&flags.profiles, "profile", nil, "Development profile to include (repeatable)")
	rootCmd.Flags().StringVar(&flags.categories, "categories", "", "Space-separated list of explicit categories")
	rootCmd.Flags().StringVar(&flags.user, "user", "devuser", "Name of the non-root user created in the image")
	rootCmd.Flags().StringVar(&flags.uid, "uid", "1000", "Numeric uid for the created user")
	rootCmd.Flags().StringVar(&flags.workdir, "workdir", "/workspace", "Working directory inside the image")
	rootCmd.Flags().BoolVar(&flags.zsh, "zsh", false, "Install zsh with Oh-My-Zsh and use it as the default shell")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the Dockerfile to stdout instead of writing a file")
	rootCmd.Flags().BoolVar(&flags.buildRun, "build-run", false, "Build and run the image after writing the Dockerfile")
	rootCmd.Flags().StringVar(&flags.configPath, "config", "", "Config file with extra profiles/categories/packages (YAML or JSONC)")
	rootCmd.Flags().StringVar(&flags.output, "output", "Dockerfile", "Output file name")

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors (including unknown flags) default to 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitFailure))
	}
}

// printError outputs an error message to stderr.
func printError(message string, underlying error) {
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// printWarnings emits advisory warnings to stderr. Warnings never change
// the exit code; resolution proceeds with the remaining valid entries.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		warnColor.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
