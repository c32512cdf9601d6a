// Package client talks to the langmatch server on behalf of the CLI.
//
// GRPCClient manages the connection, attaches the access token to every
// call through an interceptor and maps gRPC status codes to the sentinel
// errors in this package. Failures of the queue and match calls arrive in
// the response envelope and are returned as errors matching the
// internal/common sentinels (errors.Is(err, common.ErrStaleState) and so on).
package client
