// render.go builds the Dockerfile text block by block. Every block
// function is a pure function of BuildConfig (plus the resolved package
// set for the install block) and returns the block's lines in order.
//
// Block order:
//
//	header → install → user → workspace → [zsh] → runtime
//
// Blank lines separate non-empty blocks.
package render

import (
	"fmt"
	"strings"

	"github.com/mmr-tortoise/devimage/internal/catalog"
	"github.com/mmr-tortoise/devimage/internal/model"
)

// Plugin repositories installed into Oh-My-Zsh custom/plugins when the
// zsh option is enabled. Each clone is guarded independently so a
// pre-existing plugin never fails the build.
const (
	autosuggestionsRepo     = "https://github.com/zsh-users/zsh-autosuggestions"
	syntaxHighlightingRepo  = "https://github.com/zsh-users/zsh-syntax-highlighting"
	ohMyZshInstallScriptURL = "https://raw.githubusercontent.com/ohmyzsh/ohmyzsh/master/tools/install.sh"
)

// Render produces the complete Dockerfile text for the given
// configuration and resolved package set. The output always ends with a
// trailing newline.
func Render(cfg *model.BuildConfig, packages []string) string {
	blocks := [][]string{
		headerLines(cfg),
		installLines(cfg, packages),
		userLines(cfg),
		workspaceLines(cfg),
	}
	if cfg.Zsh {
		blocks = append(blocks, zshLines(cfg))
	}
	blocks = append(blocks, runtimeLines(cfg))

	var out []string
	for _, block := range blocks {
		if len(block) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, block...)
	}
	return strings.Join(out, "\n") + "\n"
}

// headerLines emits the FROM instruction and, for non-Alpine families,
// the noninteractive frontend declaration. Alpine has no equivalent
// concept, so the ENV is omitted there.
func headerLines(cfg *model.BuildConfig) []string {
	lines := []string{fmt.Sprintf("FROM %s", cfg.BaseImage)}
	if cfg.Family() != model.FamilyAlpine {
		lines = append(lines, "ENV DEBIAN_FRONTEND=noninteractive")
	}
	return lines
}

// installLines emits the package installation block. It is omitted
// entirely when the resolved set is empty. The exact command shape
// depends on the family: a single install command when the family needs
// no update/clean steps, otherwise the update → install → clean triple
// joined with line continuations.
//
// The literal tokens "git" and "curl" are appended to the install
// invocation even though resolution already guarantees them in the
// package set. This redundancy is intentional install-command
// robustness; do not remove it.
func installLines(cfg *model.BuildConfig, packages []string) []string {
	if len(packages) == 0 {
		return nil
	}

	cmds := catalog.Commands(cfg.Family())
	installCmd := fmt.Sprintf("%s %s git curl", cmds.Install, strings.Join(packages, " "))

	if cmds.Update == "" && cmds.Clean == "" {
		return []string{fmt.Sprintf("RUN %s", installCmd)}
	}

	// Update/install/clean triple. Steps whose command string is empty
	// are dropped rather than rendered as empty shell commands.
	var steps []string
	if cmds.Update != "" {
		steps = append(steps, cmds.Update)
	}
	steps = append(steps, installCmd)
	if cmds.Clean != "" {
		steps = append(steps, cmds.Clean)
	}

	lines := make([]string, 0, len(steps))
	for i, step := range steps {
		switch {
		case i == 0:
			lines = append(lines, fmt.Sprintf("RUN %s && \\", step))
		case i < len(steps)-1:
			lines = append(lines, fmt.Sprintf("    %s && \\", step))
		default:
			lines = append(lines, fmt.Sprintf("    %s", step))
		}
	}
	return lines
}

// userLines emits the user-creation instruction. The family's add-user
// command is guarded by an existence check so re-running the build
// against a base image that already ships the user is not an error.
func userLines(cfg *model.BuildConfig) []string {
	cmds := catalog.Commands(cfg.Family())
	addUser := cmds.AddUser(cfg.UID, cfg.Shell(), cfg.User)
	return []string{
		fmt.Sprintf("RUN id -u %s >/dev/null 2>&1 || %s", cfg.User, addUser),
	}
}

// workspaceLines emits the working directory setup: WORKDIR, recursive
// ownership, the HOME environment, and the recursive-ownership copy of
// the build context into the working directory.
func workspaceLines(cfg *model.BuildConfig) []string {
	owner := fmt.Sprintf("%d:%d", cfg.UID, cfg.UID)
	return []string{
		fmt.Sprintf("WORKDIR %s", cfg.WorkDir),
		fmt.Sprintf("RUN chown -R %s %s", owner, cfg.WorkDir),
		fmt.Sprintf("ENV HOME=%s", cfg.Home()),
		fmt.Sprintf("COPY --chown=%s . %s", owner, cfg.WorkDir),
	}
}

// zshLines emits the Oh-My-Zsh installation block. Every step is
// idempotent: the framework installs only if absent, each plugin clones
// only if absent (with a readable message on skip), and the .zshrc
// plugin-list rewrite applies only if the file exists. Ownership of the
// user's home is reasserted at the end because the steps run as root.
func zshLines(cfg *model.BuildConfig) []string {
	home := cfg.Home()
	pluginsDir := home + "/.oh-my-zsh/custom/plugins"
	return []string{
		fmt.Sprintf(`RUN [ -d %s/.oh-my-zsh ] || sh -c "$(curl -fsSL %s)" "" --unattended`, home, ohMyZshInstallScriptURL),
		fmt.Sprintf(`RUN if [ ! -d %s/zsh-autosuggestions ]; then git clone %s %s/zsh-autosuggestions; else echo "zsh-autosuggestions already installed, skipping"; fi`,
			pluginsDir, autosuggestionsRepo, pluginsDir),
		fmt.Sprintf(`RUN if [ ! -d %s/zsh-syntax-highlighting ]; then git clone %s %s/zsh-syntax-highlighting; else echo "zsh-syntax-highlighting already installed, skipping"; fi`,
			pluginsDir, syntaxHighlightingRepo, pluginsDir),
		fmt.Sprintf(`RUN if [ -f %s/.zshrc ]; then sed -i 's/^plugins=(git)$/plugins=(git zsh-autosuggestions zsh-syntax-highlighting)/' %s/.zshrc; fi`, home, home),
		fmt.Sprintf("RUN chown -R %d:%d %s", cfg.UID, cfg.UID, home),
	}
}

// runtimeLines emits the final two instructions: the runtime user (by
// uid) and the default command, which is the selected shell.
func runtimeLines(cfg *model.BuildConfig) []string {
	return []string{
		fmt.Sprintf("USER %d", cfg.UID),
		fmt.Sprintf(`CMD ["%s"]`, cfg.Shell()),
	}
}
