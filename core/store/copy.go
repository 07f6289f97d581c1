package store

import (
	"context"
	"time"
)

// RetryPolicy bounds the retry behavior of copy operations. Reads are
// never retried; they fail soft instead.
type RetryPolicy struct {
	// Attempts is the total number of attempts, including the first.
	Attempts int
	// Delay is the fixed pause between attempts.
	Delay time.Duration
}

// DefaultRetry matches the backend busy-wait behavior expected of
// interactive mail stores.
var DefaultRetry = RetryPolicy{Attempts: 3, Delay: 2 * time.Second}

// normalize fills unusable values so a zero RetryPolicy still copies once.
func (p RetryPolicy) normalize() RetryPolicy {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.Delay < 0 {
		p.Delay = 0
	}
	return p
}

// run invokes fn up to p.Attempts times with a fixed delay between
// attempts, returning the last error.
func (p RetryPolicy) run(fn func() error) error {
	p = p.normalize()
	var err error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		if attempt > 0 && p.Delay > 0 {
			time.Sleep(p.Delay)
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}

// CopyItem writes one item from a source store into the destination
// folder, retrying per policy. Failure surfaces as a CopyError.
func CopyItem(ctx context.Context, dst Store, folder Folder, it Item, policy RetryPolicy) error {
	policy = policy.normalize()
	err := policy.run(func() error {
		return dst.AppendItem(ctx, folder, it)
	})
	if err != nil {
		return &CopyError{Kind: "item", Path: folder.FullPath(), Attempts: policy.Attempts, Err: err}
	}
	return nil
}

// CopyFolder copies the folder from inside src, with all of its items
// and descendants, into parent inside dst. It returns the created
// destination folder and the total number of items copied. Folder
// creation and each item append are retried per policy; the first hard
// failure aborts the bulk copy and reports how much was copied before it.
//
// Item enumeration inside the bulk copy fails soft: an unreadable
// source folder contributes zero items but its subtree is still created.
func CopyFolder(ctx context.Context, src Store, from Folder, dst Store, parent Folder, policy RetryPolicy) (Folder, int, error) {
	policy = policy.normalize()

	var created Folder
	err := policy.run(func() error {
		var cerr error
		created, cerr = dst.CreateFolder(ctx, parent, from.Name)
		return cerr
	})
	if err != nil {
		return Folder{}, 0, &CopyError{Kind: "folder", Path: parent.FullPath(), Attempts: policy.Attempts, Err: err}
	}

	copied := 0
	items, err := src.Items(ctx, from)
	if err != nil {
		items = nil
	}
	for _, it := range items {
		if err := CopyItem(ctx, dst, created, it, policy); err != nil {
			return created, copied, err
		}
		copied++
	}

	children, err := src.Children(ctx, from)
	if err != nil {
		children = nil
	}
	for _, child := range children {
		_, n, err := CopyFolder(ctx, src, child, dst, created, policy)
		copied += n
		if err != nil {
			return created, copied, err
		}
	}

	return created, copied, nil
}
