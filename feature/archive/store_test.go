package archive_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/darrenhoch/DualogOutlook/core/database"
	"github.com/darrenhoch/DualogOutlook/core/store"
	"github.com/darrenhoch/DualogOutlook/core/store/storetest"
	"github.com/darrenhoch/DualogOutlook/feature/archive"
)

func openStore(t *testing.T) *archive.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.db")
	db, err := database.Connect(database.Config{Driver: "sqlite", Path: path})
	require.NoError(t, err)

	st, err := archive.New(db, "Archive", "sqlite "+path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestStore_FolderHierarchy(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	root, err := st.Root(ctx)
	require.NoError(t, err)

	inbox, err := st.CreateFolder(ctx, root, "Inbox")
	require.NoError(t, err)
	_, err = st.CreateFolder(ctx, inbox, "Projects")
	require.NoError(t, err)
	_, err = st.CreateFolder(ctx, root, "Sent")
	require.NoError(t, err)

	top, err := st.Children(ctx, root)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Inbox", top[0].Name)
	assert.Equal(t, "Sent", top[1].Name)
	assert.Equal(t, []string{"Inbox"}, top[0].Path)

	nested, err := st.Children(ctx, top[0])
	require.NoError(t, err)
	require.Len(t, nested, 1)
	assert.Equal(t, "Inbox/Projects", nested[0].FullPath())
}

func TestStore_AppendAndItems(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	root, err := st.Root(ctx)
	require.NoError(t, err)
	inbox, err := st.CreateFolder(ctx, root, "Inbox")
	require.NoError(t, err)

	at := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	msg := &storetest.Item{
		Meta: store.ItemInfo{Subject: "Weekly report", Sender: "alice@example.com", SenderName: "Alice", ReceivedAt: at, Size: 4},
		Body: []byte("body"),
	}
	require.NoError(t, st.AppendItem(ctx, inbox, msg))

	n, err := st.ItemCount(ctx, inbox)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	items, err := st.Items(ctx, inbox)
	require.NoError(t, err)
	require.Len(t, items, 1)

	info := items[0].Info()
	assert.Equal(t, "Weekly report", info.Subject)
	assert.Equal(t, "alice@example.com", info.Sender)
	assert.Equal(t, "Alice", info.SenderName)
	assert.True(t, info.ReceivedAt.Equal(at))
	assert.Equal(t, int64(4), info.Size)

	raw, err := items[0].Raw(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), raw)
}

func TestStore_AppendParsesRawHeaders(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	root, err := st.Root(ctx)
	require.NoError(t, err)
	inbox, err := st.CreateFolder(ctx, root, "Inbox")
	require.NoError(t, err)

	raw := []byte("Subject: Weekly report\r\n" +
		"From: Alice <alice@example.com>\r\n" +
		"Date: Fri, 01 Mar 2024 12:30:45 +0000\r\n" +
		"\r\n" +
		"body\r\n")
	require.NoError(t, st.AppendItem(ctx, inbox, &storetest.Item{Body: raw}))

	items, err := st.Items(ctx, inbox)
	require.NoError(t, err)
	require.Len(t, items, 1)

	info := items[0].Info()
	assert.Equal(t, "Weekly report", info.Subject)
	assert.Equal(t, "alice@example.com", info.Sender)
	assert.Equal(t, "Alice", info.SenderName)
	assert.True(t, info.ReceivedAt.Equal(time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)))
	assert.Equal(t, int64(len(raw)), info.Size)
}

func TestStore_AppendToRootRejected(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	root, err := st.Root(ctx)
	require.NoError(t, err)
	err = st.AppendItem(ctx, root, &storetest.Item{Body: []byte("x")})
	assert.ErrorContains(t, err, "archive root")
}

func TestStore_ForeignFolderResolvedByPath(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	root, err := st.Root(ctx)
	require.NoError(t, err)
	inbox, err := st.CreateFolder(ctx, root, "Inbox")
	require.NoError(t, err)
	require.NoError(t, st.AppendItem(ctx, inbox, &storetest.Item{
		Meta: store.ItemInfo{Subject: "hi"}, Body: []byte("x"),
	}))

	// A folder handed over from another store carries a foreign ref.
	foreign := store.Folder{Name: "Inbox", Path: []string{"Inbox"}}
	n, err := st.ItemCount(ctx, foreign)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	missing := store.Folder{Name: "Nope", Path: []string{"Nope"}}
	_, err = st.ItemCount(ctx, missing)
	var aerr *store.AccessError
	assert.ErrorAs(t, err, &aerr)
}

func TestStore_RootHasNoItems(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	root, err := st.Root(ctx)
	require.NoError(t, err)
	n, err := st.ItemCount(ctx, root)
	require.NoError(t, err)
	assert.Zero(t, n)

	items, err := st.Items(ctx, root)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNew_SchemaPreparationFailure(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	dialector := mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true})
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	// No expectations registered, so the first migration statement fails.
	_, err = archive.New(db, "Archive", "mysql test")
	assert.ErrorContains(t, err, "prepare archive schema")
}
