// Package rpc defines the PromptBook gRPC contract shared by the client
// adapter and the server: request/response messages, the JSON codec they
// travel on and the service descriptor with its client stub.
//
// Messages are plain Go structs. The codec is registered under the "json"
// content subtype at init time; the client stub selects it on every call and
// the server picks it up from the request content type.
package rpc
