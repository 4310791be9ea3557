package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/devimage/internal/catalog"
	"github.com/mmr-tortoise/devimage/internal/model"
)

// newTestResolver returns a resolver over the built-in tables.
func newTestResolver() *Resolver {
	return NewResolver(catalog.DefaultRegistry(), catalog.DefaultCatalog())
}

// baseline mirrors the fixed packages guaranteed in every resolved set.
var baseline = []string{"git", "ca-certificates", "bash", "curl"}

// TestSplitCategories verifies whitespace splitting of the raw
// --categories flag value.
func TestSplitCategories(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []model.Category
	}{
		{"empty string", "", []model.Category{}},
		{"whitespace only", "   ", []model.Category{}},
		{"single category", "build", []model.Category{"build"}},
		{"multiple categories", "build database", []model.Category{"build", "database"}},
		{"extra whitespace collapsed", "  build   database  ", []model.Category{"build", "database"}},
		{"tabs and newlines", "build\tdatabase\nnetwork", []model.Category{"build", "database", "network"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitCategories(tt.input))
		})
	}
}

// TestResolve_EmptySelection verifies that resolving with no profiles and
// no categories still yields exactly the baseline packages, in order.
func TestResolve_EmptySelection(t *testing.T) {
	r := newTestResolver()

	result := r.Resolve(model.FamilyAlpine, nil, nil, false)
	assert.Equal(t, baseline, result.Packages)
	assert.Empty(t, result.Categories)
	assert.Empty(t, result.Warnings)
}

// TestResolve_BaselineAlwaysPresent verifies the baseline invariant
// across a spread of selections.
func TestResolve_BaselineAlwaysPresent(t *testing.T) {
	r := newTestResolver()

	selections := []struct {
		name       string
		profiles   []model.Profile
		categories []model.Category
	}{
		{"no selection", nil, nil},
		{"one profile", []model.Profile{model.ProfileWebDev}, nil},
		{"one category", nil, []model.Category{model.CategoryBuild}},
		{"everything", []model.Profile{model.ProfileWebDev, model.ProfileDataScience}, []model.Category{model.CategoryUtils}},
		{"only unknowns", []model.Profile{"nope"}, []model.Category{"nada"}},
	}

	for _, tt := range selections {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Resolve(model.FamilyDebian, tt.profiles, tt.categories, false)
			for _, pkg := range baseline {
				assert.Contains(t, result.Packages, pkg)
			}
		})
	}
}

// TestResolve_NoDuplicates verifies the resolved set never contains
// duplicate entries, even when selections overlap heavily.
func TestResolve_NoDuplicates(t *testing.T) {
	r := newTestResolver()

	// webdev and backend share the database and network categories, and
	// the explicit selection repeats them once more.
	result := r.Resolve(
		model.FamilyAlpine,
		[]model.Profile{model.ProfileWebDev, model.ProfileBackend},
		[]model.Category{model.CategoryDatabase, model.CategoryNetwork},
		true,
	)

	seen := make(map[string]bool)
	for _, pkg := range result.Packages {
		assert.False(t, seen[pkg], "duplicate package %q in resolved set", pkg)
		seen[pkg] = true
	}
}

// TestResolve_ZshPackage verifies that zsh appears in the resolved set
// if and only if the zsh option is set.
func TestResolve_ZshPackage(t *testing.T) {
	r := newTestResolver()

	with := r.Resolve(model.FamilyAlpine, nil, nil, true)
	assert.Contains(t, with.Packages, "zsh")
	assert.Equal(t, append(append([]string{}, baseline...), "zsh"), with.Packages)

	without := r.Resolve(model.FamilyAlpine, nil, nil, false)
	assert.NotContains(t, without.Packages, "zsh")
}

// TestResolve_Deterministic verifies that identical inputs always yield
// identical package ordering.
func TestResolve_Deterministic(t *testing.T) {
	r := newTestResolver()

	first := r.Resolve(model.FamilyDebian,
		[]model.Profile{model.ProfileDataScience},
		[]model.Category{model.CategoryNetwork, model.CategoryEditors}, true)
	for i := 0; i < 10; i++ {
		again := r.Resolve(model.FamilyDebian,
			[]model.Profile{model.ProfileDataScience},
			[]model.Category{model.CategoryNetwork, model.CategoryEditors}, true)
		require.Equal(t, first.Packages, again.Packages)
		require.Equal(t, first.Categories, again.Categories)
	}
}

// TestResolve_WalkOrder pins the ordering contract: categories expand in
// selection order (profiles first, then explicit categories), tools in
// category-internal order, baseline appended last. No alphabetical
// reordering is applied.
func TestResolve_WalkOrder(t *testing.T) {
	r := newTestResolver()

	result := r.Resolve(model.FamilyAlpine,
		[]model.Profile{model.ProfileTest},
		[]model.Category{model.CategoryEditors}, false)

	assert.Equal(t, []model.Category{model.CategoryTest, model.CategoryEditors}, result.Categories)
	assert.Equal(t, []string{"figlet", "vim", "nano", "git", "ca-certificates", "bash", "curl"}, result.Packages)
}

// TestResolve_UnknownProfile verifies that an unknown profile warns and
// is skipped while the rest of the resolution completes.
func TestResolve_UnknownProfile(t *testing.T) {
	r := newTestResolver()

	result := r.Resolve(model.FamilyAlpine,
		[]model.Profile{"ghost", model.ProfileTest}, nil, false)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown profile "ghost"`)
	assert.Equal(t, []model.Category{model.CategoryTest}, result.Categories)
	assert.Contains(t, result.Packages, "figlet")
}

// TestResolve_UnknownCategory verifies that an unknown explicit category
// warns and is skipped.
func TestResolve_UnknownCategory(t *testing.T) {
	r := newTestResolver()

	result := r.Resolve(model.FamilyAlpine, nil,
		[]model.Category{"ghost", model.CategoryTest}, false)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown category "ghost"`)
	assert.Equal(t, []model.Category{model.CategoryTest}, result.Categories)
}

// TestResolve_UnknownTool verifies that a tool with no package in the
// active family's catalog warns and is skipped without aborting.
func TestResolve_UnknownTool(t *testing.T) {
	reg := catalog.DefaultRegistry().Merge(
		map[model.Category][]model.Tool{
			"exotic": {"figlet", "quantumc"},
		}, nil)
	r := NewResolver(reg, catalog.DefaultCatalog())

	result := r.Resolve(model.FamilyAlpine, nil, []model.Category{"exotic"}, false)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `"quantumc"`)
	assert.Contains(t, result.Packages, "figlet")
	assert.NotContains(t, result.Packages, "quantumc")
}

// TestResolve_DuplicateCategoryCollapses verifies that the same category
// selected both via a profile and via --categories contributes its tools
// exactly once.
func TestResolve_DuplicateCategoryCollapses(t *testing.T) {
	r := newTestResolver()

	viaBoth := r.Resolve(model.FamilyAlpine,
		[]model.Profile{model.ProfileTest},
		[]model.Category{model.CategoryTest}, false)
	viaProfile := r.Resolve(model.FamilyAlpine,
		[]model.Profile{model.ProfileTest}, nil, false)

	assert.Equal(t, viaProfile.Packages, viaBoth.Packages)
	assert.Equal(t, []model.Category{model.CategoryTest}, viaBoth.Categories)
}

// TestResolve_FamilySpecificNames verifies that the same selection
// resolves to family-specific package names.
func TestResolve_FamilySpecificNames(t *testing.T) {
	r := newTestResolver()

	alpine := r.Resolve(model.FamilyAlpine, nil, []model.Category{model.CategoryPython}, false)
	assert.Contains(t, alpine.Packages, "py3-pip")

	debian := r.Resolve(model.FamilyDebian, nil, []model.Category{model.CategoryPython}, false)
	assert.Contains(t, debian.Packages, "python3-pip")
	assert.NotContains(t, debian.Packages, "py3-pip")
}

// TestResolve_TestProfileFixture verifies the reserved smoke-test
// fixture end to end: the test profile yields exactly the test
// category's fixed set plus the baseline.
func TestResolve_TestProfileFixture(t *testing.T) {
	r := newTestResolver()

	result := r.Resolve(model.FamilyAlpine, []model.Profile{model.ProfileTest}, nil, false)
	assert.Equal(t, []string{"figlet", "git", "ca-certificates", "bash", "curl"}, result.Packages)
	assert.Empty(t, result.Warnings)
}
