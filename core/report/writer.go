package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/darrenhoch/DualogOutlook/core/storage"
)

// Filename builds the timestamp-qualified artifact name for a run.
func Filename(mode string, started time.Time, runID string) string {
	short := runID
	if i := strings.IndexByte(runID, '-'); i > 0 {
		short = runID[:i]
	}
	return fmt.Sprintf("%s_%s_%s.txt", mode, started.Format("20060102-150405"), short)
}

// Writer persists report artifacts to the local output directory and,
// when mirroring is enabled, to an object-storage bucket. A mirror
// failure is logged but never fails the run: the local artifact is the
// authoritative output.
type Writer struct {
	cfg    Config
	client storage.Client
	bucket string
	log    *zap.Logger
}

// NewWriter creates a report writer. client may be nil when mirroring is
// disabled.
func NewWriter(cfg Config, client storage.Client, bucket string, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{cfg: cfg, client: client, bucket: bucket, log: log}
}

// Write stores the rendered artifact under name and returns the local
// path it was written to.
func (w *Writer) Write(ctx context.Context, name, content string) (string, error) {
	if err := os.MkdirAll(w.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	path := filepath.Join(w.cfg.OutputDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	if w.cfg.Mirror && w.client != nil {
		w.mirror(ctx, name, content)
	}
	return path, nil
}

func (w *Writer) mirror(ctx context.Context, name, content string) {
	key := w.cfg.MirrorPrefix + name
	reader := strings.NewReader(content)
	_, err := w.client.PutObject(ctx, w.bucket, key, reader, int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		w.log.Warn("report mirror upload failed",
			zap.String("bucket", w.bucket),
			zap.String("key", key),
			zap.Error(err))
		return
	}
	w.log.Info("report mirrored", zap.String("bucket", w.bucket), zap.String("key", key))
}
