// engine.go implements container engine detection and the build/run
// invocations. All process execution happens here; the rest of the
// application never touches os/exec.
package engine

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/mmr-tortoise/devimage/internal/model"
)

// engineNames lists the container engine binaries probed on PATH,
// in preference order.
var engineNames = []string{"docker", "podman"}

// Engine is a detected container engine binary.
type Engine struct {
	// Name is the engine binary name ("docker" or "podman").
	Name string

	// Path is the resolved absolute path of the binary.
	Path string
}

// IsDocker reports whether the detected engine is docker. Only docker
// gets the SDK daemon preflight; podman has no daemon to ping.
func (e *Engine) IsDocker() bool {
	return e.Name == "docker"
}

// Detect probes PATH for a container engine and returns the first one
// found. Returns a CLIError when neither docker nor podman is installed.
func Detect() (*Engine, error) {
	for _, name := range engineNames {
		path, err := exec.LookPath(name)
		if err == nil {
			return &Engine{Name: name, Path: path}, nil
		}
	}
	return nil, model.NewCLIError(
		model.ExitFailure,
		fmt.Sprintf("no container engine found (looked for: %v)", engineNames),
	)
}

// Build runs "<engine> build -t <tag> <dir>" with attached standard
// streams, blocking until the build finishes. A non-zero exit is fatal.
func (e *Engine) Build(ctx context.Context, tag, dir string) error {
	cmd := exec.CommandContext(ctx, e.Path, "build", "-t", tag, dir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return model.WrapCLIError(
			model.ExitFailure,
			fmt.Sprintf("%s build failed for image %q", e.Name, tag),
			err,
		)
	}
	return nil
}

// Run runs "<engine> run --rm -it <tag>" with attached standard streams,
// blocking until the container exits. The -it flags hand the terminal to
// the container's default command (the configured shell). A non-zero
// exit is fatal.
func (e *Engine) Run(ctx context.Context, tag string) error {
	cmd := exec.CommandContext(ctx, e.Path, "run", "--rm", "-it", tag)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return model.WrapCLIError(
			model.ExitFailure,
			fmt.Sprintf("%s run failed for image %q", e.Name, tag),
			err,
		)
	}
	return nil
}

// Preflight verifies the engine is ready to build. For docker this pings
// the daemon through the SDK; for other engines it is a no-op, since
// LookPath success is the only readiness signal they offer.
func (e *Engine) Preflight(ctx context.Context) error {
	if !e.IsDocker() {
		return nil
	}

	cli, err := NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	return cli.Ping(ctx)
}
