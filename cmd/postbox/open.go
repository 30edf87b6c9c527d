package main

import (
	"fmt"

	"github.com/zulandar/postbox/internal/config"
	"github.com/zulandar/postbox/internal/store"
)

// openStore loads configuration and opens the message store it names.
func openStore(configPath string) (*config.Config, *store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	db, err := store.Connect(cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	return cfg, store.New(db, cfg.Store.Table), nil
}
