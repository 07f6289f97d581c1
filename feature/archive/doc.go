// Package archive adapts a SQL mail container to the store facade.
//
// The container holds two tables: folders (an adjacency-list tree) and
// messages (metadata columns plus the raw RFC822 bytes). A local SQLite
// file is the common case; the schema also runs on MySQL for shared
// archives. See core/database for connection handling.
//
// Appends store the raw message and index its metadata. When the source
// side could not supply metadata (no envelope), the raw headers are
// parsed with go-message to fill subject, sender and date, keeping the
// signature index usable in both directions.
package archive
