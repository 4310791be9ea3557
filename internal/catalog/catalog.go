// catalog.go defines the package catalog: for each image family, the
// mapping from abstract tool identifiers to the concrete package names of
// that family's repositories, and the command strings of its package
// manager and user-creation utility.
//
// The renderer stays agnostic of which family is active; it only consumes
// the four command strings and lookup results.
package catalog

import (
	"fmt"

	"github.com/mmr-tortoise/devimage/internal/model"
)

// FamilyCommands holds the command strings of one image family's package
// manager and user-management utility. Update and Clean may be empty,
// which the renderer treats as a no-op (Alpine's apk needs neither).
type FamilyCommands struct {
	// Install is the package installation command prefix; package names
	// are appended to it.
	Install string

	// Update refreshes the package index before installation.
	// Empty for families whose install command does not need it.
	Update string

	// Clean removes package manager caches after installation.
	// Empty for families that clean up as part of Install.
	Clean string

	// addUserFormat is the fmt template for the user-creation command,
	// in the order uid, shell, user.
	addUserFormat string
}

// AddUser renders the family's user-creation command for the given
// uid, shell path, and user name.
func (c FamilyCommands) AddUser(uid int, shell, user string) string {
	return fmt.Sprintf(c.addUserFormat, uid, shell, user)
}

// familyCommands maps each image family to its command strings.
var familyCommands = map[model.ImageFamily]FamilyCommands{
	model.FamilyAlpine: {
		Install:       "apk add --no-cache",
		Update:        "",
		Clean:         "",
		addUserFormat: "adduser -D -u %d -s %s %s",
	},
	model.FamilyDebian: {
		Install:       "apt-get install -y --no-install-recommends",
		Update:        "apt-get update",
		Clean:         "rm -rf /var/lib/apt/lists/*",
		addUserFormat: "useradd -m -u %d -s %s %s",
	},
}

// Commands returns the command strings for the given image family.
// Unknown families fall back to the Debian set, mirroring DetectFamily.
func Commands(family model.ImageFamily) FamilyCommands {
	if cmds, ok := familyCommands[family]; ok {
		return cmds
	}
	return familyCommands[model.FamilyDebian]
}

// BaselinePackages are always present in every resolved package set,
// regardless of profile or category selection. These are package names,
// not tools: they are identical across both families.
var BaselinePackages = []string{"git", "ca-certificates", "bash", "curl"}

// ZshPackage is appended to the resolved set when the zsh option is set.
const ZshPackage = "zsh"

// Catalog maps abstract tools to concrete package names per image family.
// The zero value is unusable; obtain one via DefaultCatalog, optionally
// extended with WithPackages.
type Catalog struct {
	packages map[model.ImageFamily]map[model.Tool]string
}

// defaultPackages is the built-in tool → package-name table per family.
// The two families mostly agree on names; the entries that differ do so
// because the distributions package the same tool under different names
// (e.g. pip is py3-pip on Alpine and python3-pip on Debian).
var defaultPackages = map[model.ImageFamily]map[model.Tool]string{
	model.FamilyAlpine: {
		"vim":             "vim",
		"nano":            "nano",
		"gcc":             "gcc",
		"make":            "make",
		"cmake":           "cmake",
		"python3":         "python3",
		"pip":             "py3-pip",
		"nodejs":          "nodejs",
		"npm":             "npm",
		"go":              "go",
		"postgres-client": "postgresql-client",
		"mysql-client":    "mysql-client",
		"sqlite":          "sqlite",
		"wget":            "wget",
		"netcat":          "netcat-openbsd",
		"openssh-client":  "openssh-client",
		"jq":              "jq",
		"htop":            "htop",
		"tree":            "tree",
		"tmux":            "tmux",
		"ripgrep":         "ripgrep",
		"figlet":          "figlet",
	},
	model.FamilyDebian: {
		"vim":             "vim",
		"nano":            "nano",
		"gcc":             "gcc",
		"make":            "make",
		"cmake":           "cmake",
		"python3":         "python3",
		"pip":             "python3-pip",
		"nodejs":          "nodejs",
		"npm":             "npm",
		"go":              "golang",
		"postgres-client": "postgresql-client",
		"mysql-client":    "default-mysql-client",
		"sqlite":          "sqlite3",
		"wget":            "wget",
		"netcat":          "netcat-openbsd",
		"openssh-client":  "openssh-client",
		"jq":              "jq",
		"htop":            "htop",
		"tree":            "tree",
		"tmux":            "tmux",
		"ripgrep":         "ripgrep",
		"figlet":          "figlet",
	},
}

// DefaultCatalog returns the built-in package catalog. The returned
// Catalog shares the built-in tables, which are never mutated; extension
// goes through WithPackages, which copies before writing.
func DefaultCatalog() *Catalog {
	return &Catalog{packages: defaultPackages}
}

// Lookup resolves an abstract tool to its concrete package name for the
// given image family. The second return value reports whether the tool
// exists in that family's catalog; absent tools are the caller's
// warn-and-skip case.
func (c *Catalog) Lookup(family model.ImageFamily, tool model.Tool) (string, bool) {
	table, ok := c.packages[family]
	if !ok {
		table = c.packages[model.FamilyDebian]
	}
	pkg, ok := table[tool]
	return pkg, ok
}

// WithPackages returns a new Catalog with the given per-family tool
// mappings layered over this one. Entries for existing tools override
// the built-ins; the receiver is left untouched.
func (c *Catalog) WithPackages(extra map[model.ImageFamily]map[model.Tool]string) *Catalog {
	if len(extra) == 0 {
		return c
	}

	merged := make(map[model.ImageFamily]map[model.Tool]string, len(c.packages))
	for family, table := range c.packages {
		copied := make(map[model.Tool]string, len(table))
		for tool, pkg := range table {
			copied[tool] = pkg
		}
		merged[family] = copied
	}
	for family, table := range extra {
		if merged[family] == nil {
			merged[family] = make(map[model.Tool]string, len(table))
		}
		for tool, pkg := range table {
			merged[family][tool] = pkg
		}
	}
	return &Catalog{packages: merged}
}
