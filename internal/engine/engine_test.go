package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/devimage/internal/model"
)

// writeFakeEngine creates an executable stub with the given name inside
// dir so exec.LookPath can find it.
func writeFakeEngine(t *testing.T, dir, name string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755))
}

// TestDetect_PrefersDocker verifies docker wins when both engines are
// on PATH.
func TestDetect_PrefersDocker(t *testing.T) {
	dir := t.TempDir()
	writeFakeEngine(t, dir, "docker")
	writeFakeEngine(t, dir, "podman")
	t.Setenv("PATH", dir)

	eng, err := Detect()
	require.NoError(t, err)
	assert.Equal(t, "docker", eng.Name)
	assert.True(t, eng.IsDocker())
}

// TestDetect_FallsBackToPodman verifies podman is selected when docker
// is absent.
func TestDetect_FallsBackToPodman(t *testing.T) {
	dir := t.TempDir()
	writeFakeEngine(t, dir, "podman")
	t.Setenv("PATH", dir)

	eng, err := Detect()
	require.NoError(t, err)
	assert.Equal(t, "podman", eng.Name)
	assert.False(t, eng.IsDocker())
}

// TestDetect_NoEngine verifies the fatal error when neither engine is
// installed.
func TestDetect_NoEngine(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Detect()
	require.Error(t, err)

	cliErr, ok := err.(*model.CLIError)
	require.True(t, ok)
	assert.Equal(t, model.ExitFailure, cliErr.Code)
	assert.Contains(t, cliErr.Message, "no container engine found")
}

// TestEngine_Preflight_NonDocker verifies the preflight is a no-op for
// podman, which has no daemon to ping.
func TestEngine_Preflight_NonDocker(t *testing.T) {
	eng := &Engine{Name: "podman", Path: "/usr/bin/podman"}
	assert.NoError(t, eng.Preflight(context.Background()))
}

// writeRecordingEngine creates an executable stub that writes its argv
// to argvFile and exits with the given code. Used to observe the exact
// command line Build and Run hand to the engine binary.
func writeRecordingEngine(t *testing.T, dir, name, argvFile string, exitCode int) *Engine {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub engines require a POSIX shell")
	}
	path := filepath.Join(dir, name)
	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" > %q\nexit %d\n", argvFile, exitCode)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return &Engine{Name: name, Path: path}
}

// recordedArgv reads back the argv line captured by a recording stub.
func recordedArgv(t *testing.T, argvFile string) string {
	t.Helper()
	data, err := os.ReadFile(argvFile)
	require.NoError(t, err)
	return strings.TrimRight(string(data), "\n")
}

// TestEngine_Build_Invocation verifies the build collaborator contract:
// the engine binary is invoked as "build -t <tag> <dir>".
func TestEngine_Build_Invocation(t *testing.T) {
	dir := t.TempDir()
	argvFile := filepath.Join(dir, "argv")
	eng := writeRecordingEngine(t, dir, "docker", argvFile, 0)

	err := eng.Build(context.Background(), "devuser_container:latest", ".")
	require.NoError(t, err)
	assert.Equal(t, "build -t devuser_container:latest .", recordedArgv(t, argvFile))
}

// TestEngine_Run_Invocation verifies the run collaborator contract:
// the engine binary is invoked as "run --rm -it <tag>".
func TestEngine_Run_Invocation(t *testing.T) {
	dir := t.TempDir()
	argvFile := filepath.Join(dir, "argv")
	eng := writeRecordingEngine(t, dir, "podman", argvFile, 0)

	err := eng.Run(context.Background(), "devuser_container:latest")
	require.NoError(t, err)
	assert.Equal(t, "run --rm -it devuser_container:latest", recordedArgv(t, argvFile))
}

// TestEngine_Build_Failure verifies a non-zero exit from the build step
// surfaces as a fatal CLIError naming the engine and image.
func TestEngine_Build_Failure(t *testing.T) {
	dir := t.TempDir()
	eng := writeRecordingEngine(t, dir, "docker", filepath.Join(dir, "argv"), 1)

	err := eng.Build(context.Background(), "devuser_container:latest", ".")
	require.Error(t, err)

	cliErr, ok := err.(*model.CLIError)
	require.True(t, ok)
	assert.Equal(t, model.ExitFailure, cliErr.Code)
	assert.Contains(t, cliErr.Message, "docker build failed")
	assert.Contains(t, cliErr.Message, "devuser_container:latest")
	assert.Error(t, cliErr.Unwrap())
}

// TestEngine_Run_Failure verifies a non-zero exit from the run step
// surfaces as a fatal CLIError naming the engine and image.
func TestEngine_Run_Failure(t *testing.T) {
	dir := t.TempDir()
	eng := writeRecordingEngine(t, dir, "podman", filepath.Join(dir, "argv"), 1)

	err := eng.Run(context.Background(), "devuser_container:latest")
	require.Error(t, err)

	cliErr, ok := err.(*model.CLIError)
	require.True(t, ok)
	assert.Equal(t, model.ExitFailure, cliErr.Code)
	assert.Contains(t, cliErr.Message, "podman run failed")
	assert.Contains(t, cliErr.Message, "devuser_container:latest")
	assert.Error(t, cliErr.Unwrap())
}
