// Package snapshot persists the most recently computed almanac table.
//
// The FileRepository stores and loads the table as protobuf JSON on disk and
// exposes a Repository interface that the server service depends on.
package snapshot
