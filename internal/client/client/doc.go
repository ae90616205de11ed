// Package client is the CLI's connection to the Lumen progress service.
//
// GRPCClient attaches the cached access token and, when set, the admin key
// to every call as gRPC metadata, and maps status codes back onto the
// sentinel errors in this package and in internal/common.
package client
