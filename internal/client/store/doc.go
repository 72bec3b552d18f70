// Package store holds the client-side state for the docstudy CLI: the
// session, the document list and focused document, the per-document note
// collection, and chat conversations.
//
// # Overview
//
// Each store is constructed once per application lifetime, owns its state
// behind a mutex, and exposes a narrow operation set plus Subscribe for
// change notification. Operations block on the network call and commit
// their result atomically when it resolves.
//
// # Races and staleness
//
// Several operations may be outstanding at once (two generation kinds, a
// note edit, a chat send). In-flight requests are never aborted; instead
// every resolution is checked against a version marker before it is
// applied:
//
//   - Documents: a focus epoch guards focus and generation resolutions,
//     and generation responses are merged per field group with an
//     updatedAt staleness check.
//   - Notes: the desired document id is compared at resolution time, so a
//     slow fetch for one document cannot land after navigating to another.
//   - Chat: a FIFO queue keeps request/response pairs in send order.
//   - FetchList coalesces concurrent calls onto one request.
//
// # Errors
//
// Failures never escape as panics: every rejected operation settles its
// status as failed with a display message. The error is also returned so
// callers can match api.ErrAuthExpired and force a re-login.
package store
