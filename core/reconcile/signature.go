package reconcile

import (
	"context"
	"strconv"
	"strings"

	"github.com/darrenhoch/DualogOutlook/core/store"
)

// NoSubject is the sentinel used in signature keys for items without a
// subject, so that two subjectless items can still match each other.
const NoSubject = "[NO_SUBJECT]"

// Signature derives the fuzzy identity keys of an item. Implementations
// must be deterministic and must normalize identically for both stores,
// or nothing will ever match.
type Signature interface {
	// Keys returns 1-2 non-empty keys for the item.
	Keys(info store.ItemInfo) []string
}

// MetadataSignature is the default matching strategy: a primary key of
// normalized subject, second-precision timestamp and sender, plus a
// secondary key of subject and byte size for items lacking timestamp or
// sender. Distinct messages that normalize to the same key are treated
// as one; that imprecision is part of the contract.
type MetadataSignature struct{}

func (MetadataSignature) Keys(info store.ItemInfo) []string {
	subject := strings.ToLower(strings.TrimSpace(info.Subject))
	if subject == "" {
		subject = NoSubject
	}

	sender := strings.ToLower(strings.TrimSpace(info.Sender))
	if sender == "" {
		sender = strings.ToLower(strings.TrimSpace(info.SenderName))
	}

	var ts string
	if !info.ReceivedAt.IsZero() {
		ts = info.ReceivedAt.UTC().Format("2006-01-02 15:04:05")
	}

	primary := subject + "|" + ts + "|" + sender
	secondary := subject + "|" + strconv.FormatInt(info.Size, 10)

	keys := []string{primary}
	if secondary != primary {
		keys = append(keys, secondary)
	}
	return keys
}

// Index is a presence oracle over the items of one target folder. It
// answers "already present" only; it does not count occurrences.
type Index map[string]struct{}

// BuildIndex enumerates the folder's items once and inserts every
// non-empty signature key. Enumeration failure surfaces as an
// IndexBuildError.
func BuildIndex(ctx context.Context, st store.Store, f store.Folder, sig Signature) (Index, error) {
	items, err := st.Items(ctx, f)
	if err != nil {
		return nil, &store.IndexBuildError{Path: f.FullPath(), Err: err}
	}

	idx := make(Index, 2*len(items))
	for _, it := range items {
		for _, key := range sig.Keys(it.Info()) {
			if key == "" {
				continue
			}
			idx[key] = struct{}{}
		}
	}
	return idx, nil
}

// Contains reports whether any of the item's keys is present.
func (x Index) Contains(sig Signature, info store.ItemInfo) bool {
	for _, key := range sig.Keys(info) {
		if key == "" {
			continue
		}
		if _, ok := x[key]; ok {
			return true
		}
	}
	return false
}
