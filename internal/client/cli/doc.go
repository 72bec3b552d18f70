// Package cli provides the interactive docstudy command-line client.
//
// It wires configuration, the request gateway, and the entity stores into
// an interactive REPL. Typical flow: log in, list documents, open one,
// then work with its artifacts, notes, chat, and quiz.
//
// Key features:
//   - Register / Login / Logout
//   - Upload, list, open and delete documents
//   - Generate summary, Q&A and quiz artifacts
//   - Notes: list, add, edit, delete
//   - Chat with the assistant about the open document
//   - Play the generated quiz with scoring
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
