// Package model defines stable boundary types for API layers.
//
// The decoded trailer itself is unaffected by any projection. These structs
// are the only types intended for direct JSON serialization by consumers
// (CLI --json output and the gRPC decode service).
package model
