// Package common contains shared constants and sentinel errors used across
// langmatch components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// identity provider's access token on inbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultDisplayName is used in match snapshots when a profile has no name.
const DefaultDisplayName = "Anonymous"
