// Package storetest provides an in-memory store.Store used by package
// tests across the repository. It supports deterministic child ordering
// and per-path fault injection for read and copy operations.
package storetest

import (
	"context"
	"fmt"
	"time"

	"github.com/darrenhoch/DualogOutlook/core/store"
)

// Item is an in-memory message.
type Item struct {
	Meta store.ItemInfo
	Body []byte
}

func (i *Item) Info() store.ItemInfo { return i.Meta }

func (i *Item) Raw(ctx context.Context) ([]byte, error) { return i.Body, nil }

// node is one in-memory folder.
type node struct {
	name     string
	children map[string]*node
	order    []string
	items    []*Item
}

func newNode(name string) *node {
	return &node{name: name, children: map[string]*node{}}
}

// Store is an in-memory store.Store implementation for tests.
type Store struct {
	name string
	root *node

	// FailChildren, FailCount and FailItems inject read errors for the
	// named folder path ("/" for root, "Inbox/Projects" for nested).
	FailChildren map[string]error
	FailCount    map[string]error
	FailItems    map[string]error

	// FailCreateTimes and FailAppendTimes make the next N create/append
	// calls fail, simulating a transiently busy backend.
	FailCreateTimes int
	FailAppendTimes int

	// CreateCalls and AppendCalls count every attempt, failures included.
	CreateCalls int
	AppendCalls int

	// Closed records whether Close was called.
	Closed bool
}

// New creates an empty in-memory store with the given display name.
func New(name string) *Store {
	return &Store{
		name:         name,
		root:         newNode(""),
		FailChildren: map[string]error{},
		FailCount:    map[string]error{},
		FailItems:    map[string]error{},
	}
}

// AddFolder creates the folder at the given path, creating missing
// ancestors, and returns the store for chaining.
func (s *Store) AddFolder(path ...string) *Store {
	s.ensure(path)
	return s
}

// AddItem appends an item to the folder at path, creating it if missing.
func (s *Store) AddItem(path []string, meta store.ItemInfo, body []byte) *Store {
	n := s.ensure(path)
	n.items = append(n.items, &Item{Meta: meta, Body: body})
	return s
}

// ItemsAt returns the in-memory items of the folder at path, for assertions.
func (s *Store) ItemsAt(path ...string) []*Item {
	n := s.lookup(path)
	if n == nil {
		return nil
	}
	return n.items
}

// HasFolder reports whether a folder exists at path.
func (s *Store) HasFolder(path ...string) bool {
	return s.lookup(path) != nil
}

func (s *Store) ensure(path []string) *node {
	n := s.root
	for _, name := range path {
		child, ok := n.children[name]
		if !ok {
			child = newNode(name)
			n.children[name] = child
			n.order = append(n.order, name)
		}
		n = child
	}
	return n
}

func (s *Store) lookup(path []string) *node {
	n := s.root
	for _, name := range path {
		child, ok := n.children[name]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

func (s *Store) Name() string { return s.name }

func (s *Store) Location() string { return "memory://" + s.name }

func (s *Store) Root(ctx context.Context) (store.Folder, error) {
	return store.Folder{Ref: s.root}, nil
}

func (s *Store) resolve(f store.Folder) (*node, error) {
	if n, ok := f.Ref.(*node); ok && n != nil {
		return n, nil
	}
	// Folders handed over from another store carry a foreign ref; fall
	// back to path resolution so cross-store tests stay convenient.
	if n := s.lookup(f.Path); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("no folder at %s", f.FullPath())
}

func (s *Store) Children(ctx context.Context, f store.Folder) ([]store.Folder, error) {
	if err := s.FailChildren[f.FullPath()]; err != nil {
		return nil, &store.AccessError{Op: "children", Path: f.FullPath(), Err: err}
	}
	n, err := s.resolve(f)
	if err != nil {
		return nil, &store.AccessError{Op: "children", Path: f.FullPath(), Err: err}
	}
	out := make([]store.Folder, 0, len(n.order))
	for _, name := range n.order {
		out = append(out, f.Child(name, n.children[name]))
	}
	return out, nil
}

func (s *Store) ItemCount(ctx context.Context, f store.Folder) (int, error) {
	if err := s.FailCount[f.FullPath()]; err != nil {
		return 0, &store.AccessError{Op: "count", Path: f.FullPath(), Err: err}
	}
	n, err := s.resolve(f)
	if err != nil {
		return 0, &store.AccessError{Op: "count", Path: f.FullPath(), Err: err}
	}
	return len(n.items), nil
}

func (s *Store) Items(ctx context.Context, f store.Folder) ([]store.Item, error) {
	if err := s.FailItems[f.FullPath()]; err != nil {
		return nil, &store.AccessError{Op: "items", Path: f.FullPath(), Err: err}
	}
	n, err := s.resolve(f)
	if err != nil {
		return nil, &store.AccessError{Op: "items", Path: f.FullPath(), Err: err}
	}
	out := make([]store.Item, 0, len(n.items))
	for _, it := range n.items {
		out = append(out, it)
	}
	return out, nil
}

func (s *Store) CreateFolder(ctx context.Context, parent store.Folder, name string) (store.Folder, error) {
	s.CreateCalls++
	if s.FailCreateTimes > 0 {
		s.FailCreateTimes--
		return store.Folder{}, fmt.Errorf("backend busy")
	}
	n, err := s.resolve(parent)
	if err != nil {
		return store.Folder{}, err
	}
	if _, exists := n.children[name]; exists {
		return store.Folder{}, fmt.Errorf("folder %q already exists under %s", name, parent.FullPath())
	}
	child := newNode(name)
	n.children[name] = child
	n.order = append(n.order, name)
	return parent.Child(name, child), nil
}

func (s *Store) AppendItem(ctx context.Context, f store.Folder, it store.Item) error {
	s.AppendCalls++
	if s.FailAppendTimes > 0 {
		s.FailAppendTimes--
		return fmt.Errorf("backend busy")
	}
	n, err := s.resolve(f)
	if err != nil {
		return err
	}
	body, err := it.Raw(ctx)
	if err != nil {
		return err
	}
	n.items = append(n.items, &Item{Meta: it.Info(), Body: body})
	return nil
}

func (s *Store) Close() error {
	s.Closed = true
	return nil
}

// Msg is a shorthand for building ItemInfo values in tests.
func Msg(subject, sender string, at time.Time, size int64) store.ItemInfo {
	return store.ItemInfo{Subject: subject, Sender: sender, ReceivedAt: at, Size: size}
}
