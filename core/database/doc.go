// Package database provides connectivity for the archive container.
//
// An archive is a SQL database holding the folder tree and raw messages
// (see feature/archive). The common case is a local SQLite file; a
// hosted MySQL database is supported for shared archives. The driver is
// selected by configuration.
//
// # Connection Management
//
// Connect returns a *gorm.DB with a verified connection and sane pool
// settings. The caller owns the handle for the duration of one run and
// must dispose of it on every exit path.
package database
