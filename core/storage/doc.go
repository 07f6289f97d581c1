// Package storage provides the object-storage client used to mirror
// report artifacts into a central bucket.
//
// It wraps the MinIO Go client behind a small interface so both AWS S3
// and self-hosted MinIO endpoints work, and so the report writer can be
// unit tested against the mock in core/storage/mocks. Mirroring is
// optional; runs without it enabled never touch this package.
package storage
