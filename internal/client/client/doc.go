// Package client is the client side of the remote store boundary.
//
// # Overview
//
// The package provides:
//  1. The RemoteStore contract (Auth + Records) the client core is written
//     against, together with the Session, User, AuthEvent and PromptPatch
//     types it exchanges.
//  2. A gRPC implementation (see GRPCClient) that injects the access token
//     through an interceptor, transparently refreshes expired tokens, maps
//     gRPC status codes to sentinel errors and translates rows between the
//     wire naming and models.Prompt.
//  3. Auth-state-change subscriptions. Each subscriber is served by its own
//     goroutine, so handlers may call back into the client freely.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) used to keep
//     the signed-in session across restarts.
//
// # Error Handling
//
// Remote failures are reported as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrInvalidArgument,
// ErrAlreadyExists.
package client
