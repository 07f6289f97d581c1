package mailbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"github.com/darrenhoch/DualogOutlook/core/store"
)

// Store is the IMAP-backed store.Store. Folder refs are the full IMAP
// mailbox names; the root folder carries the empty name.
type Store struct {
	c     *client.Client
	cfg   Config
	delim string
}

// Dial connects and authenticates against the configured IMAP server.
func Dial(cfg Config) (*Store, error) {
	var (
		c   *client.Client
		err error
	)
	if cfg.UseTLS {
		c, err = client.DialTLS(cfg.Addr(), nil)
	} else {
		c, err = client.Dial(cfg.Addr())
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Addr(), err)
	}

	if err := c.Login(cfg.Username, cfg.Password); err != nil {
		_ = c.Logout()
		return nil, fmt.Errorf("login %s: %w", cfg.Username, err)
	}

	s := &Store{c: c, cfg: cfg, delim: "/"}
	if delim, err := s.hierarchyDelimiter(); err == nil && delim != "" {
		s.delim = delim
	}
	return s, nil
}

// hierarchyDelimiter asks the server for its folder separator via the
// conventional empty LIST.
func (s *Store) hierarchyDelimiter() (string, error) {
	ch := make(chan *imap.MailboxInfo, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.c.List("", "", ch)
	}()
	delim := ""
	for mi := range ch {
		delim = mi.Delimiter
	}
	if err := <-done; err != nil {
		return "", err
	}
	return delim, nil
}

func (s *Store) Name() string { return s.cfg.Name }

func (s *Store) Location() string { return s.cfg.Addr() }

func (s *Store) Root(ctx context.Context) (store.Folder, error) {
	return store.Folder{Ref: ""}, nil
}

func (s *Store) ref(f store.Folder) string {
	if name, ok := f.Ref.(string); ok {
		return name
	}
	// Folder values handed over from the other store carry a foreign
	// ref; rebuild the IMAP name from the path.
	return strings.Join(f.Path, s.delim)
}

func (s *Store) Children(ctx context.Context, f store.Folder) ([]store.Folder, error) {
	ref := s.ref(f)
	pattern := "%"
	if ref != "" {
		pattern = ref + s.delim + "%"
	}

	ch := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- s.c.List("", pattern, ch)
	}()

	var folders []store.Folder
	for mi := range ch {
		if mi.Name == ref {
			continue
		}
		leaf := leafName(mi.Name, ref, mi.Delimiter)
		if leaf == "" {
			continue
		}
		folders = append(folders, f.Child(leaf, mi.Name))
	}
	if err := <-done; err != nil {
		return nil, &store.AccessError{Op: "children", Path: f.FullPath(), Err: err}
	}

	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	return folders, nil
}

// leafName strips the parent prefix from a full IMAP mailbox name.
func leafName(full, parent, delim string) string {
	name := full
	if parent != "" && delim != "" {
		name = strings.TrimPrefix(full, parent+delim)
	}
	// A name still containing the delimiter belongs to a deeper level;
	// some servers answer "%"-patterns loosely.
	if delim != "" && strings.Contains(name, delim) {
		return ""
	}
	return name
}

func (s *Store) ItemCount(ctx context.Context, f store.Folder) (int, error) {
	ref := s.ref(f)
	if ref == "" {
		return 0, nil
	}
	status, err := s.c.Status(ref, []imap.StatusItem{imap.StatusMessages})
	if err != nil {
		return 0, &store.AccessError{Op: "count", Path: f.FullPath(), Err: err}
	}
	return int(status.Messages), nil
}

func (s *Store) Items(ctx context.Context, f store.Folder) ([]store.Item, error) {
	ref := s.ref(f)
	if ref == "" {
		return nil, nil
	}

	mbox, err := s.c.Select(ref, true)
	if err != nil {
		return nil, &store.AccessError{Op: "items", Path: f.FullPath(), Err: err}
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddRange(1, mbox.Messages)
	fetchItems := []imap.FetchItem{imap.FetchUid, imap.FetchRFC822Size, imap.FetchEnvelope}

	messages := make(chan *imap.Message, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.c.Fetch(seqset, fetchItems, messages)
	}()

	var items []store.Item
	for msg := range messages {
		items = append(items, &mailItem{
			st:      s,
			mailbox: ref,
			uid:     msg.Uid,
			info:    envelopeInfo(msg.Envelope, msg.Size),
		})
	}
	if err := <-done; err != nil {
		return nil, &store.AccessError{Op: "items", Path: f.FullPath(), Err: err}
	}
	return items, nil
}

// envelopeInfo maps an IMAP envelope to facade metadata.
func envelopeInfo(env *imap.Envelope, size uint32) store.ItemInfo {
	info := store.ItemInfo{Size: int64(size)}
	if env == nil {
		return info
	}
	info.Subject = env.Subject
	info.ReceivedAt = env.Date
	if len(env.From) > 0 {
		info.Sender = env.From[0].Address()
		info.SenderName = env.From[0].PersonalName
	}
	return info
}

func (s *Store) CreateFolder(ctx context.Context, parent store.Folder, name string) (store.Folder, error) {
	full := name
	if ref := s.ref(parent); ref != "" {
		full = ref + s.delim + name
	}
	if err := s.c.Create(full); err != nil {
		return store.Folder{}, err
	}
	return parent.Child(name, full), nil
}

func (s *Store) AppendItem(ctx context.Context, f store.Folder, it store.Item) error {
	raw, err := it.Raw(ctx)
	if err != nil {
		return err
	}
	date := it.Info().ReceivedAt
	if date.IsZero() {
		date = time.Now()
	}
	return s.c.Append(s.ref(f), nil, date, bytes.NewBuffer(raw))
}

func (s *Store) Close() error {
	return s.c.Logout()
}

// mailItem is one message enumerated from an IMAP folder. The body is
// fetched on demand so enumeration stays metadata-only.
type mailItem struct {
	st      *Store
	mailbox string
	uid     uint32
	info    store.ItemInfo
}

func (m *mailItem) Info() store.ItemInfo { return m.info }

func (m *mailItem) Raw(ctx context.Context) ([]byte, error) {
	if _, err := m.st.c.Select(m.mailbox, true); err != nil {
		return nil, &store.AccessError{Op: "items", Path: m.mailbox, Err: err}
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(m.uid)
	section := &imap.BodySectionName{Peek: true}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- m.st.c.UidFetch(seqset, []imap.FetchItem{section.FetchItem()}, messages)
	}()

	var raw []byte
	for msg := range messages {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		bs, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}
		raw = bs
	}
	if err := <-done; err != nil {
		return nil, &store.AccessError{Op: "items", Path: m.mailbox, Err: err}
	}
	if raw == nil {
		return nil, fmt.Errorf("server returned no body for uid %d in %s", m.uid, m.mailbox)
	}
	return raw, nil
}
