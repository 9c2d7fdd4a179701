// Package codec converts almanac values to and from google.protobuf.Struct.
//
// The gRPC transport and the snapshot repository both carry their payloads as
// Struct messages, so the field names defined here are the wire format of the
// project. JSON output goes through protojson.
package codec
