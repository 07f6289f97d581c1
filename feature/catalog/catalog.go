package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/darrenhoch/DualogOutlook/core/config"
	"github.com/darrenhoch/DualogOutlook/core/database"
	"github.com/darrenhoch/DualogOutlook/core/store"
	"github.com/darrenhoch/DualogOutlook/feature/archive"
	"github.com/darrenhoch/DualogOutlook/feature/mailbox"
)

// Indices of the configured stores.
const (
	IndexMailbox = 0
	IndexArchive = 1
)

// Catalog is the config-driven store.Provider.
type Catalog struct {
	cfg *config.Config
	log *zap.Logger
}

// New builds a catalog over the loaded configuration.
func New(cfg *config.Config, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{cfg: cfg, log: log}
}

func (c *Catalog) List(ctx context.Context) ([]store.Descriptor, error) {
	return []store.Descriptor{
		{
			Index:    IndexMailbox,
			Kind:     "mailbox",
			Name:     c.cfg.Mailbox.Name,
			Location: c.cfg.Mailbox.Addr(),
		},
		{
			Index:    IndexArchive,
			Kind:     "archive",
			Name:     "Archive",
			Location: c.cfg.Archive.Location(),
		},
	}, nil
}

func (c *Catalog) Open(ctx context.Context, index int) (store.Store, error) {
	switch index {
	case IndexMailbox:
		c.log.Info("connecting to mailbox", zap.String("addr", c.cfg.Mailbox.Addr()))
		st, err := mailbox.Dial(c.cfg.Mailbox)
		if err != nil {
			return nil, &store.FatalConnectError{Store: c.cfg.Mailbox.Name, Err: err}
		}
		return st, nil

	case IndexArchive:
		c.log.Info("opening archive container", zap.String("location", c.cfg.Archive.Location()))
		db, err := database.Connect(c.cfg.Archive)
		if err != nil {
			return nil, &store.FatalConnectError{Store: "Archive", Err: err}
		}
		st, err := archive.New(db, "Archive", c.cfg.Archive.Location())
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, &store.FatalConnectError{Store: "Archive", Err: err}
		}
		return st, nil

	default:
		return nil, fmt.Errorf("no store at index %d", index)
	}
}
