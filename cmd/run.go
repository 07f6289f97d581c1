package cmd

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/darrenhoch/DualogOutlook/core/config"
	"github.com/darrenhoch/DualogOutlook/core/logger"
	"github.com/darrenhoch/DualogOutlook/core/report"
	"github.com/darrenhoch/DualogOutlook/core/storage"
	"github.com/darrenhoch/DualogOutlook/core/store"
	"github.com/darrenhoch/DualogOutlook/feature/catalog"
)

// initRun loads configuration and builds the logger shared by every command.
func initRun() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// selectStores parses and validates the two index arguments against the
// catalog listing. Invalid indices are rejected before anything is opened.
func selectStores(ctx context.Context, cat store.Provider, args []string) (store.Descriptor, store.Descriptor, error) {
	var none store.Descriptor

	descriptors, err := cat.List(ctx)
	if err != nil {
		return none, none, err
	}
	byIndex := make(map[int]store.Descriptor, len(descriptors))
	for _, d := range descriptors {
		byIndex[d.Index] = d
	}

	indices := [2]int{}
	for i, arg := range args[:2] {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return none, none, fmt.Errorf("store index %q is not a number", arg)
		}
		if _, ok := byIndex[n]; !ok {
			return none, none, fmt.Errorf("no store at index %d, run 'stores' to list them", n)
		}
		indices[i] = n
	}
	if indices[0] == indices[1] {
		return none, none, fmt.Errorf("source and target must be different stores")
	}

	return byIndex[indices[0]], byIndex[indices[1]], nil
}

// describe renders a store descriptor for report headers.
func describe(d store.Descriptor) string {
	if d.Location == "" {
		return d.Name
	}
	return fmt.Sprintf("%s (%s)", d.Name, d.Location)
}

// newReportWriter builds the report writer, attaching the mirror client
// only when mirroring is enabled. A broken mirror configuration degrades
// to local-only output.
func newReportWriter(ctx context.Context, cfg *config.Config, l *zap.Logger) *report.Writer {
	if !cfg.Report.Mirror {
		return report.NewWriter(cfg.Report, nil, "", l)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		l.Warn("report mirror unavailable", zap.Error(err))
		return report.NewWriter(cfg.Report, nil, "", l)
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		l.Warn("report mirror bucket unavailable", zap.Error(err))
		return report.NewWriter(cfg.Report, nil, "", l)
	}
	return report.NewWriter(cfg.Report, client, cfg.Storage.Bucket, l)
}

var _ store.Provider = (*catalog.Catalog)(nil)
