package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-editor/internal/auth"
	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/gateway"
	"github.com/jonathan/resume-editor/internal/hydration"
	"github.com/jonathan/resume-editor/internal/localstore"
	"github.com/jonathan/resume-editor/internal/syncer"
	"github.com/jonathan/resume-editor/internal/types"
)

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

// environment wires the editor, cache, gateway, and synchronizer for
// one CLI invocation.
type environment struct {
	cfg      config.Config
	store    *localstore.Store
	watcher  *auth.Watcher
	editor   *editor.Editor
	sync     *syncer.Synchronizer
	hydrator *hydration.Controller
}

// newEnvironment assembles the editing stack from config and env vars.
func newEnvironment() (*environment, error) {
	cfg := *config.FromEnv()
	if configPath != "" {
		fileCfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cachePath := cfg.CachePath
	if cachePath == "" {
		cachePath = localstore.DefaultPath()
	}
	store := localstore.New(cachePath)

	tokenPath := cfg.TokenPath
	tokens := auth.TokenFunc(func() string {
		if tokenPath == "" {
			return ""
		}
		data, err := os.ReadFile(tokenPath)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(data))
	})
	watcher := auth.NewWatcher(tokens, os.Getenv("JWT_SECRET"))

	var remote gateway.Gateway = gateway.Offline{}
	if cfg.APIBaseURL != "" {
		remote = gateway.NewClient(cfg.APIBaseURL, watcher)
	}

	ed := editor.New(types.NewBlankResume(uuid.NewString()))

	var debounce time.Duration
	if cfg.DebounceMillis > 0 {
		debounce = time.Duration(cfg.DebounceMillis) * time.Millisecond
	}

	s := syncer.New(syncer.Config{
		Local:    store,
		Remote:   remote,
		Session:  watcher,
		Editor:   ed,
		Debounce: debounce,
	})

	hydrator := hydration.New(hydration.Config{
		Editor: ed,
		Remote: remote,
		Local:  store,
		Syncer: s,
	})
	watcher.Subscribe(hydrator.OnAuthChange)

	// First token read; hydrates the document when a session exists.
	watcher.Refresh()

	return &environment{
		cfg:      cfg,
		store:    store,
		watcher:  watcher,
		editor:   ed,
		sync:     s,
		hydrator: hydrator,
	}, nil
}

// loadActive loads the active profile into the editor and returns it.
func (e *environment) loadActive(ctx context.Context) (*types.Profile, error) {
	profile, err := e.sync.ActiveProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active profile: %w", err)
	}
	if err := e.sync.SwitchProfile(ctx, profile.ID); err != nil {
		return nil, err
	}
	return profile, nil
}

// Close flushes and releases the synchronizer.
func (e *environment) Close() {
	e.sync.Close()
}
