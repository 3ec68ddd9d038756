// Package contract is the versioned interface definition shared by the RPC
// client and the server stubs. Every remote operation is declared once here as
// an Endpoint whose input and output types are fixed at compile time; the
// client and the server both derive their wire behaviour from these values.
//
// Changing a path, verb or shape is a breaking change and requires bumping
// Version.
package contract
