package store

import "fmt"

// AccessError reports a folder or item that could not be read. Callers
// soft-fail: a failed listing counts as empty, a failed count as zero.
type AccessError struct {
	// Op is the operation that failed ("children", "count", "items").
	Op string
	// Path is the folder path involved.
	Path string
	// Err is the underlying backend error.
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("access %s at %s: %v", e.Op, e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// CopyError reports a folder or item copy that failed after the bounded
// retry attempts were exhausted. The run logs it and moves on.
type CopyError struct {
	// Kind is "folder" or "item".
	Kind string
	// Path is the destination folder path.
	Path string
	// Attempts is how many attempts were made.
	Attempts int
	// Err is the last error observed.
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s into %s failed after %d attempts: %v", e.Kind, e.Path, e.Attempts, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// IndexBuildError reports that the target items of one folder could not
// be enumerated for signature indexing. Item reconciliation for that
// folder is abandoned; its children are still visited.
type IndexBuildError struct {
	// Path is the folder whose items could not be indexed.
	Path string
	// Err is the underlying enumeration error.
	Err error
}

func (e *IndexBuildError) Error() string {
	return fmt.Sprintf("build signature index for %s: %v", e.Path, e.Err)
}

func (e *IndexBuildError) Unwrap() error { return e.Err }

// FatalConnectError reports that a selected store could not be opened at
// all. This is the only error that aborts a whole run; nothing retries it.
type FatalConnectError struct {
	// Store is the display name or location of the store.
	Store string
	// Err is the underlying connect error.
	Err error
}

func (e *FatalConnectError) Error() string {
	return fmt.Sprintf("connect to store %s: %v", e.Store, e.Err)
}

func (e *FatalConnectError) Unwrap() error { return e.Err }
