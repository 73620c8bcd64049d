package main

import (
	"os"

	"github.com/sant0-9/captionkit/internal/config"
	"github.com/sant0-9/captionkit/internal/logger"
	"github.com/sant0-9/captionkit/internal/profile"
	"github.com/sant0-9/captionkit/internal/store"
)

// environment holds what every command needs once config is loaded.
type environment struct {
	cfg      *config.Config
	firstRun bool
	log      logger.Logger
	store    store.Store
	profiles profile.Lookup
	dir      *profile.DirStore
}

func bootstrap(verbose bool) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// No config file and nothing in the environment: run setup.
	firstRun := cfg == nil && os.Getenv(config.EnvProvider) == ""
	if cfg == nil {
		if cfg, err = config.DefaultConfig().WithDefaults(); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()

	log := logger.New(cfg.LogFile, verbose)

	st, err := store.Open(cfg.History)
	if err != nil {
		log.Warn("main", "history unavailable, captions will not be saved", map[string]any{
			"driver": cfg.History.Driver,
			"error":  err.Error(),
		})
		st = store.Nop{}
	}

	var profiles profile.Lookup
	dir, err := profile.NewDirStore(cfg.ProfilesDir)
	if err != nil {
		log.Warn("main", "profiles directory unavailable", map[string]any{"error": err.Error()})
		dir = nil
	} else {
		profiles = profile.NewCachedLookup(dir, 0)
	}

	return &environment{
		cfg:      cfg,
		firstRun: firstRun,
		log:      log,
		store:    st,
		profiles: profiles,
		dir:      dir,
	}, nil
}

func (e *environment) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("main", "closing history", map[string]any{"error": err.Error()})
	}
	_ = e.log.Sync()
}
