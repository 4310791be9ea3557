// Package engine invokes the external container engine that builds and
// runs the generated image.
//
// The engine is the first of the well-known binaries (docker, podman)
// found on PATH. Build and run shell out to that binary with attached
// standard streams and block until it exits; there are no retries, and a
// non-zero exit from either step is immediately fatal.
//
// When the selected engine is docker, a lightweight daemon preflight ping
// via the Docker SDK turns an unreachable daemon into a distinct error
// before any build output is produced.
package engine
