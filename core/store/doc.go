// Package store defines the access facade shared by every mail store
// backend: a live mailbox or an archive container is exposed as a folder
// tree with message-like items, regardless of what actually backs it.
//
// The reconciliation engine in core/reconcile depends only on the
// interfaces declared here; concrete backends live under feature/
// (feature/mailbox for IMAP, feature/archive for SQL containers).
//
// # Failure model
//
// Read operations (Children, ItemCount, Items) fail soft at call sites:
// callers treat a failed listing as empty and a failed count as zero.
// Copy operations are the only ones retried, with a bounded attempt
// count and a fixed delay, because interactive mail backends routinely
// report transient busy states. All failures surface as the typed
// errors in errors.go, never as panics.
//
// # Copy semantics
//
// CopyItem and CopyFolder are cross-store operations: they read from one
// Store and write into another. CopyFolder is bulk and recursive: the
// destination receives the folder, its items and its whole subtree in a
// single call. Every individual append is committed independently, so an
// interrupted copy leaves the destination partially restored but never
// corrupted.
package store
