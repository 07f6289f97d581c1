package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"gorm.io/gorm"

	"github.com/darrenhoch/DualogOutlook/core/store"
)

// Store is the SQL-container-backed store.Store. Folder refs are the
// folder row IDs; the root carries ID zero and maps to the top level
// (rows with a nil parent).
type Store struct {
	db       *gorm.DB
	name     string
	location string
}

// New prepares the container schema on the given connection and returns
// the store. The caller keeps ownership of the connection; Close
// disposes of it.
func New(db *gorm.DB, name, location string) (*Store, error) {
	if err := db.AutoMigrate(&FolderRow{}, &MessageRow{}); err != nil {
		return nil, fmt.Errorf("prepare archive schema: %w", err)
	}
	s := &Store{db: db, name: name, location: location}
	if err := s.verifySchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Name() string { return s.name }

func (s *Store) Location() string { return s.location }

func (s *Store) Root(ctx context.Context) (store.Folder, error) {
	return store.Folder{Ref: uint(0)}, nil
}

// resolve returns the folder row ID for f, zero meaning the top level.
// Folders from a foreign store are re-resolved by path.
func (s *Store) resolve(ctx context.Context, f store.Folder) (uint, error) {
	if id, ok := f.Ref.(uint); ok {
		return id, nil
	}

	var parent *uint
	for _, name := range f.Path {
		var row FolderRow
		q := s.db.WithContext(ctx).Where("name = ?", name)
		if parent == nil {
			q = q.Where("parent_id IS NULL")
		} else {
			q = q.Where("parent_id = ?", *parent)
		}
		if err := q.First(&row).Error; err != nil {
			return 0, fmt.Errorf("no folder at %s: %w", f.FullPath(), err)
		}
		id := row.ID
		parent = &id
	}
	if parent == nil {
		return 0, nil
	}
	return *parent, nil
}

func (s *Store) Children(ctx context.Context, f store.Folder) ([]store.Folder, error) {
	id, err := s.resolve(ctx, f)
	if err != nil {
		return nil, &store.AccessError{Op: "children", Path: f.FullPath(), Err: err}
	}

	var rows []FolderRow
	q := s.db.WithContext(ctx).Order("id")
	if id == 0 {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", id)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, &store.AccessError{Op: "children", Path: f.FullPath(), Err: err}
	}

	folders := make([]store.Folder, 0, len(rows))
	for _, row := range rows {
		folders = append(folders, f.Child(row.Name, row.ID))
	}
	return folders, nil
}

func (s *Store) ItemCount(ctx context.Context, f store.Folder) (int, error) {
	id, err := s.resolve(ctx, f)
	if err != nil {
		return 0, &store.AccessError{Op: "count", Path: f.FullPath(), Err: err}
	}
	if id == 0 {
		return 0, nil
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&MessageRow{}).Where("folder_id = ?", id).Count(&n).Error; err != nil {
		return 0, &store.AccessError{Op: "count", Path: f.FullPath(), Err: err}
	}
	return int(n), nil
}

func (s *Store) Items(ctx context.Context, f store.Folder) ([]store.Item, error) {
	id, err := s.resolve(ctx, f)
	if err != nil {
		return nil, &store.AccessError{Op: "items", Path: f.FullPath(), Err: err}
	}
	if id == 0 {
		return nil, nil
	}

	// Raw content stays in the database until an item is actually copied.
	var rows []MessageRow
	err = s.db.WithContext(ctx).
		Select("id", "folder_id", "subject", "sender", "sender_name", "received_at", "size").
		Where("folder_id = ?", id).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, &store.AccessError{Op: "items", Path: f.FullPath(), Err: err}
	}

	items := make([]store.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, &archivedItem{st: s, row: row})
	}
	return items, nil
}

func (s *Store) CreateFolder(ctx context.Context, parent store.Folder, name string) (store.Folder, error) {
	id, err := s.resolve(ctx, parent)
	if err != nil {
		return store.Folder{}, err
	}

	row := FolderRow{Name: name}
	if id != 0 {
		row.ParentID = &id
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return store.Folder{}, fmt.Errorf("create folder %q under %s: %w", name, parent.FullPath(), err)
	}
	return parent.Child(name, row.ID), nil
}

func (s *Store) AppendItem(ctx context.Context, f store.Folder, it store.Item) error {
	id, err := s.resolve(ctx, f)
	if err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("cannot append items to the archive root")
	}

	raw, err := it.Raw(ctx)
	if err != nil {
		return err
	}

	info := it.Info()
	if info.Subject == "" && info.Sender == "" && info.ReceivedAt.IsZero() {
		if parsed, ok := parseRawMetadata(raw); ok {
			info = parsed
		}
	}
	if info.Size == 0 {
		info.Size = int64(len(raw))
	}

	row := MessageRow{
		FolderID:   id,
		Subject:    info.Subject,
		Sender:     info.Sender,
		SenderName: info.SenderName,
		Size:       info.Size,
		Raw:        raw,
	}
	if !info.ReceivedAt.IsZero() {
		at := info.ReceivedAt
		row.ReceivedAt = &at
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// parseRawMetadata extracts subject, sender and date from raw RFC822
// headers. Unknown charsets are tolerated; anything worse makes the
// append fall back to empty metadata.
func parseRawMetadata(raw []byte) (store.ItemInfo, bool) {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return store.ItemInfo{}, false
	}

	h := mail.Header{Header: entity.Header}
	var info store.ItemInfo
	if subject, err := h.Subject(); err == nil {
		info.Subject = subject
	}
	if date, err := h.Date(); err == nil {
		info.ReceivedAt = date
	}
	if addrs, err := h.AddressList("From"); err == nil && len(addrs) > 0 {
		info.Sender = addrs[0].Address
		info.SenderName = addrs[0].Name
	}
	info.Size = int64(len(raw))
	return info, true
}

// archivedItem is one message row; Raw loads the blob on demand.
type archivedItem struct {
	st  *Store
	row MessageRow
}

func (a *archivedItem) Info() store.ItemInfo {
	info := store.ItemInfo{
		Subject:    a.row.Subject,
		Sender:     a.row.Sender,
		SenderName: a.row.SenderName,
		Size:       a.row.Size,
	}
	if a.row.ReceivedAt != nil {
		info.ReceivedAt = *a.row.ReceivedAt
	}
	return info
}

func (a *archivedItem) Raw(ctx context.Context) ([]byte, error) {
	var row MessageRow
	err := a.st.db.WithContext(ctx).Select("raw").First(&row, a.row.ID).Error
	if err != nil {
		return nil, &store.AccessError{Op: "items", Path: fmt.Sprintf("message %d", a.row.ID), Err: err}
	}
	return row.Raw, nil
}

// verifySchema sanity-checks that the messages table kept the columns
// the adapter depends on, guarding against foreign or truncated
// containers that happen to migrate cleanly.
func (s *Store) verifySchema() error {
	cols, err := dbColumns(s.db, "messages")
	if err != nil {
		return fmt.Errorf("inspect archive container: %w", err)
	}
	for _, required := range []string{"subject", "sender", "size", "raw"} {
		if _, ok := cols[required]; !ok {
			return fmt.Errorf("archive container is missing messages.%s", required)
		}
	}
	return nil
}
