package reconcile

import (
	"context"

	"go.uber.org/zap"

	"github.com/darrenhoch/DualogOutlook/core/store"
)

// Compare aligns the source and target folders and returns the
// comparison tree for the pair. Access failures never abort the walk:
// unreadable counts degrade to zero and unreadable child listings
// produce an error node in place of the affected subtree.
func Compare(ctx context.Context, run *Run, src store.Store, srcFolder store.Folder, dst store.Store, dstFolder store.Folder) *Node {
	return comparePair(ctx, run, src, srcFolder, dst, dstFolder, 0)
}

func comparePair(ctx context.Context, run *Run, src store.Store, sf store.Folder, dst store.Store, df store.Folder, depth int) *Node {
	if depth > run.opts.MaxDepth {
		return &Node{
			Name:    sf.Name,
			Path:    sf.Path,
			Class:   ClassDepthLimited,
			Message: "recursion bound reached, subtree not compared",
		}
	}

	srcCount := softCount(ctx, run, src, sf)
	dstCount := softCount(ctx, run, dst, df)

	node := &Node{
		Name:        sf.Name,
		Path:        sf.Path,
		SourceCount: srcCount,
		TargetCount: dstCount,
	}
	if srcCount == dstCount {
		node.Class = ClassMatched
		run.Counters.Matched++
	} else {
		node.Class = ClassCountDiffers
		run.Counters.CountDiffers++
	}

	srcKids := softChildren(ctx, run, src, sf, node)
	dstKids := softChildren(ctx, run, dst, df, node)

	dstByName := make(map[string]store.Folder, len(dstKids))
	for _, kid := range dstKids {
		dstByName[kid.Name] = kid
	}

	consumed := make(map[string]bool, len(srcKids))
	for _, kid := range srcKids {
		match, ok := dstByName[kid.Name]
		if !ok {
			node.Children = append(node.Children, absentNode(ctx, run, src, kid, ClassAbsentInTarget))
			continue
		}
		consumed[kid.Name] = true
		node.Children = append(node.Children, comparePair(ctx, run, src, kid, dst, match, depth+1))
	}

	for _, kid := range dstKids {
		if consumed[kid.Name] {
			continue
		}
		node.Children = append(node.Children, absentNode(ctx, run, dst, kid, ClassAbsentInSource))
	}

	return node
}

// absentNode classifies a folder present on one side only. The absence
// already implies the whole subtree is absent, so it is not descended;
// only the folder's own item count is recorded.
func absentNode(ctx context.Context, run *Run, st store.Store, f store.Folder, class Classification) *Node {
	count := softCount(ctx, run, st, f)
	node := &Node{Name: f.Name, Path: f.Path, Class: class}
	switch class {
	case ClassAbsentInTarget:
		node.SourceCount = count
		run.Counters.AbsentInTarget++
		run.Counters.AbsentInTargetItems += count
	case ClassAbsentInSource:
		node.TargetCount = count
		run.Counters.AbsentInSource++
		run.Counters.AbsentInSourceItems += count
	}
	return node
}

// softCount absorbs count failures as zero, per the facade contract.
func softCount(ctx context.Context, run *Run, st store.Store, f store.Folder) int {
	n, err := st.ItemCount(ctx, f)
	if err != nil {
		run.log.Warn("item count unavailable, treating as zero",
			zap.String("store", st.Name()),
			zap.String("folder", f.FullPath()),
			zap.Error(err))
		return 0
	}
	return n
}

// softChildren absorbs listing failures as an empty child set, attaching
// an error node so the report shows the unread subtree.
func softChildren(ctx context.Context, run *Run, st store.Store, f store.Folder, parent *Node) []store.Folder {
	kids, err := st.Children(ctx, f)
	if err != nil {
		run.log.Warn("child listing failed, continuing with siblings",
			zap.String("store", st.Name()),
			zap.String("folder", f.FullPath()),
			zap.Error(err))
		run.Counters.Errors++
		parent.Children = append(parent.Children, &Node{
			Name:    f.Name,
			Path:    f.Path,
			Class:   ClassError,
			Message: "children unreadable on " + st.Name() + ": " + err.Error(),
		})
		return nil
	}
	return kids
}
