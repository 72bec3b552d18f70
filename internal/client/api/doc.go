// Package api is the request gateway between the client-side stores and
// the docstudy backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering
//     auth, documents, AI generation, notes, and chat.
//  2. A concrete REST implementation (see HTTPClient) that injects the
//     bearer token from a TokenSource on every call, stamps request ids,
//     and maps HTTP failures to a closed set of sentinel errors.
//  3. The error taxonomy itself: ErrAuthExpired, ErrValidation,
//     ErrNotFound, ErrServer, ErrNetwork, plus the classified Error type.
//
// # Session invalidation
//
// When the server answers 401, the gateway clears the token source before
// returning ErrAuthExpired. Callers must treat that error as terminal for
// the current operation and force re-authentication; the gateway never
// retries on its own.
package api
