// generate.go implements the generation pipeline behind the root command:
// validate flags, resolve the package set, render the Dockerfile, then
// either print it (--dry-run) or write it and optionally build and run
// the image (--build-run).
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mmr-tortoise/devimage/internal/catalog"
	"github.com/mmr-tortoise/devimage/internal/configfile"
	"github.com/mmr-tortoise/devimage/internal/engine"
	"github.com/mmr-tortoise/devimage/internal/model"
	"github.com/mmr-tortoise/devimage/internal/render"
	"github.com/mmr-tortoise/devimage/internal/resolve"
)

// generateFlags holds the flag values for the root command.
// These are bound to cobra flags in NewRootCommand.
type generateFlags struct {
	base       string   // --base: base image identifier
	profiles   []string // --profile: selected profiles, repeatable
	categories string   // --categories: space-separated explicit categories
	user       string   // --user: name of the created non-root user
	uid        string   // --uid: numeric uid, validated before resolution
	workdir    string   // --workdir: working directory inside the image
	zsh        bool     // --zsh: zsh + Oh-My-Zsh setup
	dryRun     bool     // --dry-run: print instead of writing a file
	buildRun   bool     // --build-run: build and run after writing
	configPath string   // --config: optional table-extension file
	output     string   // --output: output file name
}

// testedBaseImages is the set of base images the generated Dockerfiles
// are exercised against. Any other image is accepted with a warning.
var testedBaseImages = map[string]bool{
	"alpine:3.18":     true,
	"debian:12":       true,
	"debian:bookworm": true,
}

// runGenerate is the main orchestration function for the root command.
func runGenerate(ctx context.Context, flags *generateFlags) error {
	// Step 1: Validate the uid before any resolution or output. A
	// malformed uid is the one fatal validation error of the pipeline.
	uid, err := model.ParseUID(flags.uid)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "invalid --uid value", err)
	}

	cfg := &model.BuildConfig{
		BaseImage: flags.base,
		User:      flags.user,
		UID:       uid,
		WorkDir:   flags.workdir,
		Zsh:       flags.zsh,
	}

	// Step 2: Advisory base image check. Untested images still generate;
	// the family fallback (non-Alpine → Debian-like) covers them.
	if !testedBaseImages[flags.base] {
		printWarnings([]string{fmt.Sprintf("base image %q is not in the tested set, proceeding anyway", flags.base)})
	}
	VerboseLog("Base image: %s (family: %s)", cfg.BaseImage, cfg.Family())

	// Step 3: Assemble the lookup tables, layering the optional config
	// file over the built-ins.
	registry := catalog.DefaultRegistry()
	packageCatalog := catalog.DefaultCatalog()
	if flags.configPath != "" {
		userCfg, loadErr := configfile.Load(flags.configPath)
		if loadErr != nil {
			return model.WrapCLIError(model.ExitFailure, "failed to load config file", loadErr)
		}
		var warnings []string
		registry, packageCatalog, warnings = userCfg.Apply(registry, packageCatalog)
		printWarnings(warnings)
		VerboseLog("Config file applied: %s (%d categories, %d profiles)",
			flags.configPath, registry.Categories(), registry.Profiles())
	}

	// Step 4: Resolve the package set.
	profiles := make([]model.Profile, 0, len(flags.profiles))
	for _, p := range flags.profiles {
		profiles = append(profiles, model.Profile(p))
	}
	explicitCategories := resolve.SplitCategories(flags.categories)

	resolver := resolve.NewResolver(registry, packageCatalog)
	result := resolver.Resolve(cfg.Family(), profiles, explicitCategories, cfg.Zsh)
	printWarnings(result.Warnings)
	VerboseLog("Resolved %d package(s) from %d category(ies)", len(result.Packages), len(result.Categories))

	// Step 5: Render the Dockerfile text.
	text := render.Render(cfg, result.Packages)

	// Step 6: Dry run — Dockerfile text to stdout, no file, no summary,
	// and --build-run is skipped.
	if flags.dryRun {
		fmt.Print(text)
		if flags.buildRun {
			VerboseLog("Skipping --build-run because --dry-run is set")
		}
		return nil
	}

	// Step 7: Write the Dockerfile.
	if writeErr := os.WriteFile(flags.output, []byte(text), 0o644); writeErr != nil {
		return model.WrapCLIError(model.ExitFailure, fmt.Sprintf("failed to write %s", flags.output), writeErr)
	}

	printSummary(cfg, flags, result)

	// Step 8: Optionally build and run the image.
	if flags.buildRun {
		return buildAndRun(ctx, cfg)
	}
	return nil
}

// buildAndRun detects a container engine, preflights it, then builds and
// runs the generated image. Each step is attempted exactly once; any
// failure aborts the invocation.
func buildAndRun(ctx context.Context, cfg *model.BuildConfig) error {
	eng, err := engine.Detect()
	if err != nil {
		return err
	}
	VerboseLog("Using container engine: %s (%s)", eng.Name, eng.Path)

	if err := eng.Preflight(ctx); err != nil {
		return err
	}

	tag := cfg.ImageTag()
	fmt.Printf("Building image %s with %s...\n", tag, eng.Name)
	if err := eng.Build(ctx, tag, "."); err != nil {
		return err
	}

	fmt.Printf("Running image %s...\n", tag)
	return eng.Run(ctx, tag)
}

// printSummary outputs the human-readable generation summary after the
// Dockerfile has been written.
func printSummary(cfg *model.BuildConfig, flags *generateFlags, result resolve.Result) {
	categories := make([]string, 0, len(result.Categories))
	for _, c := range result.Categories {
		categories = append(categories, string(c))
	}

	fmt.Printf("Generated %s\n", flags.output)
	fmt.Printf("  Base image: %s\n", cfg.BaseImage)
	fmt.Printf("  User:       %s (uid %d)\n", cfg.User, cfg.UID)
	fmt.Printf("  Profiles:   %s\n", orNone(strings.Join(flags.profiles, " ")))
	fmt.Printf("  Categories: %s\n", orNone(strings.Join(categories, " ")))
	fmt.Printf("  Packages:   %s\n", strings.Join(result.Packages, " "))
}

// orNone substitutes a placeholder for empty list renderings in the summary.
func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
