// resolver.go implements the resolution walk:
//
//	profiles → categories → tools → package names
//
// in strict selection order, with first-occurrence deduplication at the
// category level and again on the final package list, plus the fixed
// baseline packages appended at the end.
package resolve

import (
	"fmt"
	"strings"

	"github.com/mmr-tortoise/devimage/internal/catalog"
	"github.com/mmr-tortoise/devimage/internal/model"
)

// Result holds the outcome of one resolution: the final ordered package
// list, the surviving categories that produced it, and any advisory
// warnings emitted along the way.
type Result struct {
	// Packages is the resolved package set: unique entries in
	// first-occurrence order of the resolution walk. This ordering is
	// the contract; no alphabetical reordering is applied.
	Packages []string

	// Categories lists the deduplicated categories that survived
	// expansion, in resolution order. Used for the summary output.
	Categories []model.Category

	// Warnings collects human-readable advisory messages for unknown
	// profiles, categories, and tools. Warnings never abort resolution.
	Warnings []string
}

// Resolver computes resolved package sets from profile and category
// selections against a registry and catalog pair.
type Resolver struct {
	registry *catalog.Registry
	catalog  *catalog.Catalog
}

// NewResolver creates a Resolver over the given registry and catalog.
// Both are treated as read-only.
func NewResolver(reg *catalog.Registry, cat *catalog.Catalog) *Resolver {
	return &Resolver{registry: reg, catalog: cat}
}

// SplitCategories normalizes the raw --categories flag value into
// category identifiers. The flag carries a whitespace-separated list;
// empty fields are dropped.
func SplitCategories(raw string) []model.Category {
	fields := strings.Fields(raw)
	categories := make([]model.Category, 0, len(fields))
	for _, f := range fields {
		categories = append(categories, model.Category(f))
	}
	return categories
}

// Resolve computes the resolved package set for the given image family,
// selected profiles, and explicit categories.
//
// The walk proceeds in this order:
//  1. Expand each profile into its category list, in selection order;
//     unknown profiles are skipped with a warning.
//  2. Append the explicit categories after all profile-derived ones.
//  3. Deduplicate categories, preserving first occurrence.
//  4. Expand each surviving category into tools, in order; unknown
//     categories are skipped with a warning.
//  5. Look up each tool's package name in the family catalog; unknown
//     tools are skipped with a warning.
//  6. Append the baseline packages and, when zsh is set, the zsh package.
//  7. Deduplicate the full package list, preserving first occurrence.
func (r *Resolver) Resolve(family model.ImageFamily, profiles []model.Profile, categories []model.Category, zsh bool) Result {
	var result Result

	// Steps 1-2: profile expansion, then explicit categories.
	var selected []model.Category
	for _, profile := range profiles {
		cats, ok := r.registry.ProfileCategories(profile)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unknown profile %q, skipping", profile))
			continue
		}
		selected = append(selected, cats...)
	}
	selected = append(selected, categories...)

	// Step 3: category dedup, first occurrence wins.
	seenCategories := make(map[model.Category]bool, len(selected))
	for _, c := range selected {
		if seenCategories[c] {
			continue
		}
		seenCategories[c] = true

		// Unknown categories are detected here rather than during
		// selection so that explicit and profile-derived categories
		// share one warning path.
		if _, ok := r.registry.CategoryTools(c); !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unknown category %q, skipping", c))
			continue
		}
		result.Categories = append(result.Categories, c)
	}

	// Steps 4-5: tool expansion and catalog lookup.
	var packages []string
	for _, c := range result.Categories {
		tools, _ := r.registry.CategoryTools(c)
		for _, tool := range tools {
			pkg, ok := r.catalog.Lookup(family, tool)
			if !ok {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("no %s package for tool %q, skipping", family, tool))
				continue
			}
			packages = append(packages, pkg)
		}
	}

	// Step 6: fixed baseline, then the optional zsh package.
	packages = append(packages, catalog.BaselinePackages...)
	if zsh {
		packages = append(packages, catalog.ZshPackage)
	}

	// Step 7: final dedup, first occurrence wins.
	seenPackages := make(map[string]bool, len(packages))
	result.Packages = make([]string, 0, len(packages))
	for _, pkg := range packages {
		if seenPackages[pkg] {
			continue
		}
		seenPackages[pkg] = true
		result.Packages = append(result.Packages, pkg)
	}

	return result
}
