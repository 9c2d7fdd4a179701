// Package config defines the settings shared by the almanac binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the default observer location and clock offset, the
// ephemeris provider to use, the gRPC server address and the schedule on which
// the server refreshes its persisted almanac table.
package config
