// registry.go defines the category and profile registries: the two upper
// layers of indirection in package resolution. A profile expands to an
// ordered list of categories, and a category expands to an ordered list
// of abstract tools.
//
// Order is preserved for readability of the generated install command but
// has no semantic effect on the resolved set beyond first-occurrence
// deduplication.
package catalog

import (
	"github.com/mmr-tortoise/devimage/internal/model"
)

// Registry holds the category → tools and profile → categories tables.
// Obtain the built-in tables via DefaultRegistry; user extensions from a
// config file are layered on with Merge, which copies before writing.
type Registry struct {
	categories map[model.Category][]model.Tool
	profiles   map[model.Profile][]model.Category
}

// defaultCategories is the built-in category → tools table.
// The test category is a reserved self-test fixture with a minimal fixed
// set; it exercises the full resolution pipeline end-to-end.
var defaultCategories = map[model.Category][]model.Tool{
	model.CategoryEditors:  {"vim", "nano"},
	model.CategoryBuild:    {"gcc", "make", "cmake"},
	model.CategoryPython:   {"python3", "pip"},
	model.CategoryNode:     {"nodejs", "npm"},
	model.CategoryGo:       {"go"},
	model.CategoryDatabase: {"postgres-client", "mysql-client", "sqlite"},
	model.CategoryNetwork:  {"wget", "netcat", "openssh-client", "jq"},
	model.CategoryUtils:    {"htop", "tree", "tmux", "ripgrep"},
	model.CategoryTest:     {"figlet"},
}

// defaultProfiles is the built-in profile → categories table.
// The test profile mirrors the test category for pipeline smoke tests.
var defaultProfiles = map[model.Profile][]model.Category{
	model.ProfileWebDev:      {model.CategoryNode, model.CategoryDatabase, model.CategoryNetwork},
	model.ProfileBackend:     {model.CategoryBuild, model.CategoryDatabase, model.CategoryNetwork},
	model.ProfileDataScience: {model.CategoryPython, model.CategoryDatabase, model.CategoryUtils},
	model.ProfileSystems:     {model.CategoryBuild, model.CategoryUtils, model.CategoryNetwork},
	model.ProfileTest:        {model.CategoryTest},
}

// DefaultRegistry returns the built-in category and profile tables.
// The returned Registry shares the built-in maps, which are never
// mutated; extension goes through Merge.
func DefaultRegistry() *Registry {
	return &Registry{
		categories: defaultCategories,
		profiles:   defaultProfiles,
	}
}

// CategoryTools returns the ordered tool list for a category.
// The second return value reports whether the category exists;
// absent categories are the caller's warn-and-skip case.
func (r *Registry) CategoryTools(category model.Category) ([]model.Tool, bool) {
	tools, ok := r.categories[category]
	return tools, ok
}

// ProfileCategories returns the ordered category list for a profile.
// The second return value reports whether the profile exists.
func (r *Registry) ProfileCategories(profile model.Profile) ([]model.Category, bool) {
	categories, ok := r.profiles[profile]
	return categories, ok
}

// Categories returns the number of categories in the registry.
func (r *Registry) Categories() int {
	return len(r.categories)
}

// Profiles returns the number of profiles in the registry.
func (r *Registry) Profiles() int {
	return len(r.profiles)
}

// Merge returns a new Registry with the given tables layered over this
// one. Entries for existing identifiers override the built-ins entirely
// (no per-tool splicing); the receiver is left untouched.
func (r *Registry) Merge(categories map[model.Category][]model.Tool, profiles map[model.Profile][]model.Category) *Registry {
	if len(categories) == 0 && len(profiles) == 0 {
		return r
	}

	mergedCategories := make(map[model.Category][]model.Tool, len(r.categories)+len(categories))
	for id, tools := range r.categories {
		mergedCategories[id] = tools
	}
	for id, tools := range categories {
		mergedCategories[id] = tools
	}

	mergedProfiles := make(map[model.Profile][]model.Category, len(r.profiles)+len(profiles))
	for id, cats := range r.profiles {
		mergedProfiles[id] = cats
	}
	for id, cats := range profiles {
		mergedProfiles[id] = cats
	}

	return &Registry{categories: mergedCategories, profiles: mergedProfiles}
}
