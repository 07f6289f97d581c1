package reconcile_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darrenhoch/DualogOutlook/core/reconcile"
	"github.com/darrenhoch/DualogOutlook/core/store"
	"github.com/darrenhoch/DualogOutlook/core/store/storetest"
)

func addMessages(s *storetest.Store, path []string, n int) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s.AddItem(path,
			storetest.Msg(fmt.Sprintf("msg-%s-%d", path[len(path)-1], i), "a@x.com", at.Add(time.Duration(i)*time.Minute), int64(100+i)),
			[]byte("body"))
	}
}

func roots(t *testing.T, src, dst *storetest.Store) (store.Folder, store.Folder) {
	t.Helper()
	ctx := context.Background()
	sr, err := src.Root(ctx)
	require.NoError(t, err)
	dr, err := dst.Root(ctx)
	require.NoError(t, err)
	return sr, dr
}

func childByName(t *testing.T, n *reconcile.Node, name string) *reconcile.Node {
	t.Helper()
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no child node %q", name)
	return nil
}

func TestCompare_MatchedLeaf(t *testing.T) {
	src := storetest.New("src")
	dst := storetest.New("dst")
	addMessages(src, []string{"Inbox"}, 10)
	addMessages(dst, []string{"Inbox"}, 10)

	run := reconcile.NewRun(nil, reconcile.Options{})
	sr, dr := roots(t, src, dst)
	root := reconcile.Compare(context.Background(), run, src, sr, dst, dr)

	inbox := childByName(t, root, "Inbox")
	assert.Equal(t, reconcile.ClassMatched, inbox.Class)
	assert.Equal(t, 10, inbox.SourceCount)
	assert.Equal(t, 10, inbox.TargetCount)
	assert.Equal(t, 2, run.Counters.Matched) // root pair + Inbox
	assert.Zero(t, run.Counters.CountDiffers)
}

func TestCompare_EmptyFoldersBothSides(t *testing.T) {
	src := storetest.New("src").AddFolder("Drafts")
	dst := storetest.New("dst").AddFolder("Drafts")

	run := reconcile.NewRun(nil, reconcile.Options{})
	sr, dr := roots(t, src, dst)
	root := reconcile.Compare(context.Background(), run, src, sr, dst, dr)

	drafts := childByName(t, root, "Drafts")
	assert.Equal(t, reconcile.ClassMatched, drafts.Class)
	assert.Zero(t, run.Counters.Errors)
}

func TestCompare_CountDiffers(t *testing.T) {
	src := storetest.New("src")
	dst := storetest.New("dst")
	addMessages(src, []string{"Inbox"}, 12)
	addMessages(dst, []string{"Inbox"}, 9)

	run := reconcile.NewRun(nil, reconcile.Options{})
	sr, dr := roots(t, src, dst)
	root := reconcile.Compare(context.Background(), run, src, sr, dst, dr)

	inbox := childByName(t, root, "Inbox")
	assert.Equal(t, reconcile.ClassCountDiffers, inbox.Class)
	assert.Equal(t, 12, inbox.SourceCount)
	assert.Equal(t, 9, inbox.TargetCount)
	assert.Equal(t, 1, run.Counters.CountDiffers)
}

func TestCompare_AbsenceIsMutuallyExclusive(t *testing.T) {
	src := storetest.New("src").AddFolder("Inbox")
	dst := storetest.New("dst").AddFolder("Inbox")
	addMessages(src, []string{"Inbox", "Projects"}, 5)
	addMessages(dst, []string{"Inbox", "Archive2019"}, 4)

	run := reconcile.NewRun(nil, reconcile.Options{})
	sr, dr := roots(t, src, dst)
	root := reconcile.Compare(context.Background(), run, src, sr, dst, dr)

	inbox := childByName(t, root, "Inbox")
	projects := childByName(t, inbox, "Projects")
	archived := childByName(t, inbox, "Archive2019")

	assert.Equal(t, reconcile.ClassAbsentInTarget, projects.Class)
	assert.Equal(t, 5, projects.SourceCount)
	assert.Equal(t, reconcile.ClassAbsentInSource, archived.Class)
	assert.Equal(t, 4, archived.TargetCount)

	// A folder present on exactly one side is never reported under both
	// classifications.
	assert.Equal(t, 1, run.Counters.AbsentInTarget)
	assert.Equal(t, 1, run.Counters.AbsentInSource)
	assert.Equal(t, 5, run.Counters.AbsentInTargetItems)
	assert.Equal(t, 4, run.Counters.AbsentInSourceItems)
}

func TestCompare_AbsentSubtreeIsNotDescended(t *testing.T) {
	src := storetest.New("src")
	dst := storetest.New("dst")
	addMessages(src, []string{"Projects"}, 2)
	addMessages(src, []string{"Projects", "2024"}, 7)

	run := reconcile.NewRun(nil, reconcile.Options{})
	sr, dr := roots(t, src, dst)
	root := reconcile.Compare(context.Background(), run, src, sr, dst, dr)

	projects := childByName(t, root, "Projects")
	assert.Equal(t, reconcile.ClassAbsentInTarget, projects.Class)
	assert.Empty(t, projects.Children)
	// Only the folder's own items are recorded; the absence already
	// implies the whole subtree is absent.
	assert.Equal(t, 2, projects.SourceCount)
	assert.Equal(t, 1, run.Counters.AbsentInTarget)
}

func TestCompare_ClassificationTotals(t *testing.T) {
	src := storetest.New("src")
	dst := storetest.New("dst")
	addMessages(src, []string{"Inbox"}, 3)
	addMessages(dst, []string{"Inbox"}, 3)
	addMessages(src, []string{"Sent"}, 4)
	addMessages(dst, []string{"Sent"}, 2)
	src.AddFolder("OnlySrc")
	dst.AddFolder("OnlyDst")

	run := reconcile.NewRun(nil, reconcile.Options{})
	sr, dr := roots(t, src, dst)
	reconcile.Compare(context.Background(), run, src, sr, dst, dr)

	c := run.Counters
	// Distinct folder names across both trees: root, Inbox, Sent,
	// OnlySrc, OnlyDst.
	total := c.Matched + c.CountDiffers + c.AbsentInTarget + c.AbsentInSource
	assert.Equal(t, 5, total)
}

func TestCompare_NameMatchingIsCaseSensitive(t *testing.T) {
	src := storetest.New("src").AddFolder("Inbox")
	dst := storetest.New("dst").AddFolder("INBOX")

	run := reconcile.NewRun(nil, reconcile.Options{})
	sr, dr := roots(t, src, dst)
	root := reconcile.Compare(context.Background(), run, src, sr, dst, dr)

	assert.Equal(t, reconcile.ClassAbsentInTarget, childByName(t, root, "Inbox").Class)
	assert.Equal(t, reconcile.ClassAbsentInSource, childByName(t, root, "INBOX").Class)
}

func TestCompare_UnreadableFolderDoesNotAbort(t *testing.T) {
	src := storetest.New("src")
	dst := storetest.New("dst")
	addMessages(src, []string{"Inbox"}, 1)
	addMessages(dst, []string{"Inbox"}, 1)
	addMessages(src, []string{"Sent"}, 2)
	addMessages(dst, []string{"Sent"}, 2)
	src.FailChildren["Inbox"] = fmt.Errorf("mapi busy")

	run := reconcile.NewRun(nil, reconcile.Options{})
	sr, dr := roots(t, src, dst)
	root := reconcile.Compare(context.Background(), run, src, sr, dst, dr)

	inbox := childByName(t, root, "Inbox")
	require.NotEmpty(t, inbox.Children)
	assert.Equal(t, reconcile.ClassError, inbox.Children[0].Class)
	assert.Equal(t, 1, run.Counters.Errors)

	// The sibling is still classified
	assert.Equal(t, reconcile.ClassMatched, childByName(t, root, "Sent").Class)
}

func TestCompare_UnreadableCountIsZero(t *testing.T) {
	src := storetest.New("src")
	dst := storetest.New("dst")
	addMessages(src, []string{"Inbox"}, 5)
	addMessages(dst, []string{"Inbox"}, 5)
	dst.FailCount["Inbox"] = fmt.Errorf("mapi busy")

	run := reconcile.NewRun(nil, reconcile.Options{})
	sr, dr := roots(t, src, dst)
	root := reconcile.Compare(context.Background(), run, src, sr, dst, dr)

	inbox := childByName(t, root, "Inbox")
	assert.Equal(t, reconcile.ClassCountDiffers, inbox.Class)
	assert.Equal(t, 0, inbox.TargetCount)
}

func TestCompare_DepthBound(t *testing.T) {
	src := storetest.New("src").AddFolder("A", "B", "C")
	dst := storetest.New("dst").AddFolder("A", "B", "C")

	run := reconcile.NewRun(nil, reconcile.Options{MaxDepth: 1})
	sr, dr := roots(t, src, dst)
	root := reconcile.Compare(context.Background(), run, src, sr, dst, dr)

	a := childByName(t, root, "A")
	b := childByName(t, a, "B")
	assert.Equal(t, reconcile.ClassDepthLimited, b.Class)
	assert.Empty(t, b.Children)
}
