// Package reconcile aligns two independently-mutable mail store trees
// and selectively copies missing content between them.
//
// The package has three cooperating parts:
//
// 1. Aligner: Compare walks a source folder and a target folder in
// lock-step by name, classifying every pair as matched, count-differs,
// or absent on one side. Folder matching is exact and case-sensitive;
// a renamed folder shows up as one absence on each side.
//
// 2. Signature index: items carry no stable cross-store identifier, so
// presence is decided through normalized metadata keys
// (subject|timestamp|sender, with subject|size as a fallback). The
// Signature strategy is pluggable; MetadataSignature is the default.
// Two genuinely distinct messages sharing a key collapse into one,
// a known precision trade-off of the scheme.
//
// 3. Restore engine: Restore copies whole folders that are missing on
// the target in one bulk operation, and copies individual items into
// folders that exist on both sides but undercount on the target,
// consulting the signature index to skip duplicates. Re-running a
// restore against a fully restored pair performs zero copies.
//
// All traversal is depth-first and strictly sequential; the backends
// are single-threaded-access surfaces. Counters and the action log
// live on an explicit Run value threaded through every call; there is
// no ambient mutable state. A single unreadable folder or failed copy
// is recorded and skipped; only a store that cannot be opened at all
// aborts a run.
package reconcile
