package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tandemlist/tandem/internal/config"
	"github.com/tandemlist/tandem/internal/notify"
	"github.com/tandemlist/tandem/internal/store"
)

// App holds the application state and dependencies. There is no
// instance lock on purpose: multiple concurrent sessions on the same
// file are the point, and the store's merge-on-write protocol is what
// coordinates them.
type App struct {
	Store    *store.Store
	Notifier *notify.Notifier
	Config   config.Config
}

// New creates a new application instance for the given configuration.
func New(cfg config.Config) (*App, error) {
	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	n := notify.NewNotifier()
	n.SetEnabled(cfg.Notify.Enabled)

	return &App{
		Store:    store.Open(cfg.File),
		Notifier: n,
		Config:   cfg,
	}, nil
}
