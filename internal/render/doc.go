// Package render emits Dockerfile text from a BuildConfig and a resolved
// package set.
//
// Rendering is a pure function: each block of the Dockerfile is produced
// by its own function returning an ordered list of instruction lines, and
// the blocks are concatenated at the end. There is deliberately no single
// monolithic string template; the conditional blocks (image family, zsh
// option, empty package set) stay separate so formatting is exact.
package render
