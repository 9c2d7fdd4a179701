// Package version exposes build metadata for the almanac binaries.
//
// Version, Commit and BuildTime are injected with -ldflags; when they are not,
// the values recorded by the Go toolchain in the binary are used instead.
package version
