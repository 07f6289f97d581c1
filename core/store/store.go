package store

import (
	"context"
	"strings"
	"time"
)

// ItemInfo is the metadata a backend can report for a single message.
// Every field except Size is optional; absent values stay zero.
type ItemInfo struct {
	// Subject is the message subject, unnormalized.
	Subject string
	// Sender is the sender address (e.g. "a@x.com").
	Sender string
	// SenderName is the sender display name, used when no address exists.
	SenderName string
	// ReceivedAt is the receipt timestamp, second precision. Zero if unknown.
	ReceivedAt time.Time
	// Size is the message size in bytes, best effort.
	Size int64
}

// Item is a message-like record owned by a folder. Items carry no stable
// cross-store identifier; matching is done on derived signatures.
type Item interface {
	// Info returns the item metadata. Must not touch the backend.
	Info() ItemInfo
	// Raw returns the full message bytes, fetching from the backend if needed.
	Raw(ctx context.Context) ([]byte, error)
}

// Folder is a node in a store's tree. Name is unique among siblings only.
// Ref is the backend handle for this folder and is meaningless outside
// the Store that produced it.
type Folder struct {
	// Name is the folder display name. Empty for a store root.
	Name string
	// Path holds every path segment from the top level down to this
	// folder, Name included. Empty for a store root.
	Path []string
	// Ref is the owning backend's opaque handle.
	Ref any
}

// FullPath renders the folder path with "/" separators, for reports and logs.
func (f Folder) FullPath() string {
	if len(f.Path) == 0 {
		return "/"
	}
	return strings.Join(f.Path, "/")
}

// Child builds the Folder value for a child of f with the given backend ref.
func (f Folder) Child(name string, ref any) Folder {
	path := make([]string, 0, len(f.Path)+1)
	path = append(path, f.Path...)
	path = append(path, name)
	return Folder{Name: name, Path: path, Ref: ref}
}

// Store is the uniform facade over one hierarchical message container.
// Implementations are assumed to be single-threaded-access backends:
// callers never issue concurrent calls against the same Store.
type Store interface {
	// Name returns the store display name.
	Name() string
	// Location returns the backing location (file path, server address),
	// or "" if the backend has none.
	Location() string

	// Root returns the root folder of the store tree.
	Root(ctx context.Context) (Folder, error)
	// Children lists the direct child folders of f.
	Children(ctx context.Context, f Folder) ([]Folder, error)
	// ItemCount returns the number of items directly in f.
	ItemCount(ctx context.Context, f Folder) (int, error)
	// Items enumerates the items directly in f. Each call restarts the
	// enumeration; the result is finite.
	Items(ctx context.Context, f Folder) ([]Item, error)

	// CreateFolder creates a child folder of parent and returns it.
	CreateFolder(ctx context.Context, parent Folder, name string) (Folder, error)
	// AppendItem writes an item (metadata and raw content) into f.
	AppendItem(ctx context.Context, f Folder, it Item) error

	// Close releases the backend connection or handle.
	Close() error
}
