package reconcile

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/darrenhoch/DualogOutlook/core/store"
)

// Restore walks the source and target folders in lock-step and copies
// missing content from source into target. Folder-level restore is
// all-or-nothing: a folder missing entirely on the target is copied in
// one bulk operation, subtree included. Item-level restore is
// incremental and duplicate-safe through the signature index, so the
// whole operation is idempotent: re-running against a fully restored
// pair performs zero copies.
//
// Failed copies and unreadable folders are recorded and skipped; the
// run always completes and always yields a log.
func Restore(ctx context.Context, run *Run, src store.Store, srcFolder store.Folder, dst store.Store, dstFolder store.Folder) {
	restorePair(ctx, run, src, srcFolder, dst, dstFolder, 0)
}

func restorePair(ctx context.Context, run *Run, src store.Store, sf store.Folder, dst store.Store, df store.Folder, depth int) {
	if depth > run.opts.MaxDepth {
		run.record(Record{
			Kind:    RecordDepthLimited,
			Path:    sf.FullPath(),
			Message: "recursion bound reached, subtree not restored",
		})
		return
	}
	run.progress(sf.FullPath())

	restoreItems(ctx, run, src, sf, dst, df)

	srcKids, err := src.Children(ctx, sf)
	if err != nil {
		run.Counters.Errors++
		run.record(Record{Kind: RecordError, Path: sf.FullPath(), Message: "source children unreadable: " + err.Error()})
		return
	}
	dstKids, err := dst.Children(ctx, df)
	if err != nil {
		run.Counters.Errors++
		run.record(Record{Kind: RecordError, Path: df.FullPath(), Message: "target children unreadable: " + err.Error()})
		return
	}

	dstByName := make(map[string]store.Folder, len(dstKids))
	for _, kid := range dstKids {
		dstByName[kid.Name] = kid
	}

	for _, kid := range srcKids {
		match, ok := dstByName[kid.Name]
		if !ok {
			restoreMissingFolder(ctx, run, src, kid, dst, df)
			continue
		}
		restorePair(ctx, run, src, kid, dst, match, depth+1)
	}
}

// restoreMissingFolder handles the MissingEntirely state: the target has
// no folder of this name under the current parent, so the whole source
// folder is copied in one operation and its children are not revisited.
func restoreMissingFolder(ctx context.Context, run *Run, src store.Store, from store.Folder, dst store.Store, parent store.Folder) {
	if run.opts.DryRun {
		count := softCount(ctx, run, src, from)
		run.Counters.FoldersRestored++
		run.Counters.ItemsRestored += count
		run.record(Record{Kind: RecordRestoredFolder, Path: from.FullPath(), Items: count})
		return
	}

	_, copied, err := store.CopyFolder(ctx, src, from, dst, parent, run.opts.Retry)
	if err != nil {
		run.Counters.Errors++
		run.Counters.ItemsRestored += copied
		run.record(Record{Kind: RecordError, Path: from.FullPath(), Items: copied, Message: err.Error()})
		run.log.Warn("bulk folder copy failed",
			zap.String("folder", from.FullPath()),
			zap.Int("copied", copied),
			zap.Error(err))
		return
	}

	run.Counters.FoldersRestored++
	run.Counters.ItemsRestored += copied
	run.record(Record{Kind: RecordRestoredFolder, Path: from.FullPath(), Items: copied})
	run.log.Info("restored folder",
		zap.String("folder", from.FullPath()),
		zap.Int("items", copied))
}

// restoreItems reconciles the items of a folder pair that exists on both
// sides. Only an undercounting target triggers the signature scan; an
// index build failure abandons item reconciliation for this folder but
// the caller still recurses into children.
func restoreItems(ctx context.Context, run *Run, src store.Store, sf store.Folder, dst store.Store, df store.Folder) {
	srcCount := softCount(ctx, run, src, sf)
	dstCount := softCount(ctx, run, dst, df)

	if srcCount <= dstCount {
		run.record(Record{Kind: RecordChecked, Path: sf.FullPath()})
		return
	}

	idx, err := BuildIndex(ctx, dst, df, run.sig)
	if err != nil {
		run.Counters.Errors++
		run.record(Record{Kind: RecordError, Path: df.FullPath(), Message: err.Error()})
		return
	}

	items, err := src.Items(ctx, sf)
	if err != nil {
		run.Counters.Errors++
		run.record(Record{Kind: RecordError, Path: sf.FullPath(), Message: "source items unreadable: " + err.Error()})
		return
	}

	copied, skipped, failed := 0, 0, 0
	for _, it := range items {
		if idx.Contains(run.sig, it.Info()) {
			skipped++
			continue
		}
		if run.opts.DryRun {
			copied++
			continue
		}
		if err := store.CopyItem(ctx, dst, df, it, run.opts.Retry); err != nil {
			failed++
			run.Counters.Errors++
			run.record(Record{Kind: RecordError, Path: df.FullPath(), Message: err.Error()})
			var cerr *store.CopyError
			if errors.As(err, &cerr) {
				run.log.Warn("item copy failed",
					zap.String("folder", df.FullPath()),
					zap.Int("attempts", cerr.Attempts),
					zap.Error(cerr.Err))
			}
			continue
		}
		copied++
	}

	run.Counters.ItemsRestored += copied
	run.Counters.DuplicatesSkipped += skipped
	if copied > 0 || failed > 0 {
		run.record(Record{Kind: RecordRestoredItems, Path: sf.FullPath(), Items: copied, Skipped: skipped})
	} else {
		run.record(Record{Kind: RecordChecked, Path: sf.FullPath(), Skipped: skipped})
	}
}
