package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darrenhoch/DualogOutlook/core/store"
	"github.com/darrenhoch/DualogOutlook/core/store/storetest"
)

func TestCopyItem_RetriesTransientFailures(t *testing.T) {
	ctx := context.Background()
	src := storetest.New("src")
	src.AddItem([]string{"Inbox"}, storetest.Msg("hello", "a@x.com", time.Now(), 10), []byte("body"))

	dst := storetest.New("dst").AddFolder("Inbox")
	dst.FailAppendTimes = 2

	items := src.ItemsAt("Inbox")
	require.Len(t, items, 1)

	folder := store.Folder{Name: "Inbox", Path: []string{"Inbox"}}
	policy := store.RetryPolicy{Attempts: 3, Delay: 0}

	err := store.CopyItem(ctx, dst, folder, items[0], policy)
	assert.NoError(t, err)
	assert.Equal(t, 3, dst.AppendCalls)
	assert.Len(t, dst.ItemsAt("Inbox"), 1)
}

func TestCopyItem_FailsAfterBoundedAttempts(t *testing.T) {
	ctx := context.Background()
	src := storetest.New("src")
	src.AddItem([]string{"Inbox"}, storetest.Msg("hello", "a@x.com", time.Now(), 10), []byte("body"))

	dst := storetest.New("dst").AddFolder("Inbox")
	dst.FailAppendTimes = 10

	folder := store.Folder{Name: "Inbox", Path: []string{"Inbox"}}
	err := store.CopyItem(ctx, dst, folder, src.ItemsAt("Inbox")[0], store.RetryPolicy{Attempts: 3})

	var cerr *store.CopyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "item", cerr.Kind)
	assert.Equal(t, 3, cerr.Attempts)
	assert.Equal(t, 3, dst.AppendCalls)
	assert.Empty(t, dst.ItemsAt("Inbox"))
}

func TestCopyFolder_CopiesSubtreeAndItems(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	src := storetest.New("src")
	src.AddItem([]string{"Projects"}, storetest.Msg("p1", "a@x.com", now, 10), []byte("p1"))
	src.AddItem([]string{"Projects"}, storetest.Msg("p2", "a@x.com", now, 11), []byte("p2"))
	src.AddItem([]string{"Projects", "2024"}, storetest.Msg("old", "b@x.com", now, 12), []byte("old"))

	dst := storetest.New("dst")

	srcRoot, err := src.Root(ctx)
	require.NoError(t, err)
	kids, err := src.Children(ctx, srcRoot)
	require.NoError(t, err)
	require.Len(t, kids, 1)

	dstRoot, err := dst.Root(ctx)
	require.NoError(t, err)

	created, copied, err := store.CopyFolder(ctx, src, kids[0], dst, dstRoot, store.RetryPolicy{})
	require.NoError(t, err)
	assert.Equal(t, "Projects", created.Name)
	assert.Equal(t, 3, copied)
	assert.Len(t, dst.ItemsAt("Projects"), 2)
	assert.Len(t, dst.ItemsAt("Projects", "2024"), 1)
}

func TestCopyFolder_ReportsPartialProgressOnFailure(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	src := storetest.New("src")
	src.AddItem([]string{"Projects"}, storetest.Msg("p1", "a@x.com", now, 10), []byte("p1"))
	src.AddItem([]string{"Projects"}, storetest.Msg("p2", "a@x.com", now, 11), []byte("p2"))

	dst := storetest.New("dst")
	dst.FailAppendTimes = 99

	srcRoot, _ := src.Root(ctx)
	kids, _ := src.Children(ctx, srcRoot)
	dstRoot, _ := dst.Root(ctx)

	_, copied, err := store.CopyFolder(ctx, src, kids[0], dst, dstRoot, store.RetryPolicy{Attempts: 2})
	require.Error(t, err)
	assert.Equal(t, 0, copied)

	var cerr *store.CopyError
	assert.True(t, errors.As(err, &cerr))
	// The folder itself was created before the item copy failed
	assert.True(t, dst.HasFolder("Projects"))
}

func TestRetryPolicy_ZeroValueCopiesOnce(t *testing.T) {
	ctx := context.Background()
	src := storetest.New("src")
	src.AddItem([]string{"Inbox"}, storetest.Msg("hello", "a@x.com", time.Now(), 10), []byte("body"))

	dst := storetest.New("dst").AddFolder("Inbox")
	dst.FailAppendTimes = 1

	folder := store.Folder{Name: "Inbox", Path: []string{"Inbox"}}
	err := store.CopyItem(ctx, dst, folder, src.ItemsAt("Inbox")[0], store.RetryPolicy{})
	assert.Error(t, err)
	assert.Equal(t, 1, dst.AppendCalls)
}
