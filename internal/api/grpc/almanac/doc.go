// Package almanac implements the gRPC transport for the almanac service.
//
// Requests and responses travel as google.protobuf.Struct messages, so the
// service descriptor and the client stub are written by hand instead of
// generated. The server adapts those messages to solar types and calls into a
// provided business-service interface.
package almanac
