package mailbox

import (
	"testing"
	"time"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"

	"github.com/darrenhoch/DualogOutlook/core/store"
)

func TestLeafName(t *testing.T) {
	tests := []struct {
		name   string
		full   string
		parent string
		delim  string
		want   string
	}{
		{"top level", "Inbox", "", "/", "Inbox"},
		{"direct child", "Inbox/Projects", "Inbox", "/", "Projects"},
		{"deeper level rejected", "Inbox/Projects/2024", "Inbox", "/", ""},
		{"dot delimiter", "Inbox.Projects", "Inbox", ".", "Projects"},
		{"no delimiter reported", "Inbox", "", "", "Inbox"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, leafName(tt.full, tt.parent, tt.delim))
		})
	}
}

func TestEnvelopeInfo(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	env := &imap.Envelope{
		Subject: "Weekly report",
		Date:    at,
		From: []*imap.Address{
			{PersonalName: "Alice", MailboxName: "alice", HostName: "example.com"},
		},
	}

	info := envelopeInfo(env, 2048)
	assert.Equal(t, "Weekly report", info.Subject)
	assert.Equal(t, "alice@example.com", info.Sender)
	assert.Equal(t, "Alice", info.SenderName)
	assert.True(t, info.ReceivedAt.Equal(at))
	assert.Equal(t, int64(2048), info.Size)
}

func TestEnvelopeInfo_NilEnvelope(t *testing.T) {
	info := envelopeInfo(nil, 10)
	assert.Equal(t, store.ItemInfo{Size: 10}, info)
}

func TestStoreRef(t *testing.T) {
	s := &Store{delim: "/"}

	assert.Equal(t, "Inbox", s.ref(store.Folder{Ref: "Inbox"}))
	assert.Equal(t, "", s.ref(store.Folder{Ref: ""}))

	// Foreign refs fall back to the path joined with the server delimiter.
	foreign := store.Folder{Name: "Projects", Path: []string{"Inbox", "Projects"}, Ref: uint(3)}
	assert.Equal(t, "Inbox/Projects", s.ref(foreign))

	s.delim = "."
	assert.Equal(t, "Inbox.Projects", s.ref(foreign))
}

func TestConfigAddr(t *testing.T) {
	cfg := Config{Server: "imap.example.com", Port: 993}
	assert.Equal(t, "imap.example.com:993", cfg.Addr())
}
