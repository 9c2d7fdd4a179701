// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client wrapper around the almanac API that
// applies per-call timeouts and converts Struct messages back to solar types.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
