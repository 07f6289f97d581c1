package store

import "context"

// Descriptor identifies one openable store with a stable index. The CLI
// validates indices against the listing before any store is opened.
type Descriptor struct {
	// Index is the stable selection index of this store.
	Index int
	// Kind describes the backend ("mailbox", "archive").
	Kind string
	// Name is the display name.
	Name string
	// Location is the backing file path or server address, if any.
	Location string
}

// Provider enumerates the stores available to a run and opens them on
// demand. Open failures are reported as FatalConnectError: a store that
// cannot be opened aborts the whole run.
type Provider interface {
	// List returns every available store with a stable index.
	List(ctx context.Context) ([]Descriptor, error)
	// Open dials or opens the store at the given index. The caller owns
	// the returned Store and must Close it on every exit path.
	Open(ctx context.Context, index int) (Store, error)
}
