// Package mailbox adapts a live IMAP mailbox to the store facade.
//
// Folders map to IMAP mailboxes, with the server's hierarchy delimiter
// discovered at dial time. Item metadata comes from message envelopes;
// raw content is fetched lazily per item, so enumeration stays cheap
// and restartable. Appends carry the original receipt date where the
// source side knows it.
//
// The underlying connection is single-threaded by design: every call
// blocks until the server answers, which matches the sequential
// traversal of the reconciliation engine.
package mailbox
