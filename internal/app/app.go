package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/tmux-emoji-popup/internal/backend"
	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/insert"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging"
	"github.com/atomicstack/tmux-emoji-popup/internal/prefs"
	"github.com/atomicstack/tmux-emoji-popup/internal/state"
	"github.com/atomicstack/tmux-emoji-popup/internal/syncstore"
	"github.com/atomicstack/tmux-emoji-popup/internal/tmux"
	"github.com/atomicstack/tmux-emoji-popup/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath   string
	TargetPane   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	StorePath    string
	LegacyPath   string
	Ephemeral    bool
	DataURL      string
	KeepOpen     bool
	NoInsert     bool
	Tab          string
	Language     string
	Query        string
	Headless     bool
	PollInterval time.Duration
}

var (
	resolveSocket = tmux.ResolveSocketPath
	currentPane   = tmux.CurrentPane
	runProgram    = func(m tea.Model) error {
		program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
		_, err := program.Run()
		return err
	}
)

// Run bootstraps and executes the Bubble Tea program, or prints matches and
// returns when cfg.Headless is set.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, reloader, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	svc := prefs.New(store, nil)
	// a failed read is logged by the service and leaves defaults in place
	_ = svc.LoadFromSync(ctx)
	if cfg.Language != "" {
		svc.Preferences().SetLanguage(state.Language(cfg.Language))
	}

	items := state.NewCatalogStore()
	loader := catalog.NewLoader(nil, newSource(cfg.DataURL), items)

	if cfg.Headless {
		return PrintMatches(ctx, os.Stdout, cfg, svc, loader, items)
	}

	socketPath, err := resolveSocket(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	defer tmux.Shutdown()

	target := resolveTarget(socketPath, cfg)
	watcher := backend.NewWatcher(backend.Options{
		Store:    reloader,
		Socket:   socketPath,
		Target:   target,
		Interval: cfg.PollInterval,
	})
	defer watcher.Stop()

	model := ui.NewModel(ui.Options{
		Context:    ctx,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		KeepOpen:   cfg.KeepOpen,
		Tab:        cfg.Tab,
		Socket:     socketPath,
		Watcher:    watcher,
		Prefs:      svc,
		Catalog:    items,
		Loader:     loader,
		Deliverer:  insert.New(socketPath, target, !cfg.NoInsert),
	})
	err = runProgram(model)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// openStore returns the preference store and, for file-backed stores, the
// reloader the watcher polls. Legacy preferences are migrated on the way.
func openStore(ctx context.Context, cfg Config) (syncstore.Store, backend.Reloader, error) {
	if cfg.Ephemeral {
		return syncstore.NewMemoryStore(nil), nil, nil
	}
	file, err := syncstore.OpenFile(cfg.StorePath)
	if err != nil {
		if file == nil {
			return nil, nil, err
		}
		logging.Error(fmt.Errorf("read preferences: %w", err))
	}
	legacy, err := syncstore.OpenLegacy(cfg.LegacyPath)
	if err != nil {
		logging.Error(err)
		return file, file, nil
	}
	if err := syncstore.Migrate(ctx, legacy, file); err != nil {
		logging.Error(err)
	}
	return file, file, nil
}

func newSource(dataURL string) catalog.Source {
	if dataURL == "" {
		return catalog.EmbedSource()
	}
	return catalog.NewHTTPSource(dataURL)
}

// resolveTarget picks the pane that receives inserted text. A blank result
// leaves the picker in clipboard-only mode.
func resolveTarget(socketPath string, cfg Config) string {
	if cfg.NoInsert {
		return ""
	}
	if cfg.TargetPane != "" {
		return cfg.TargetPane
	}
	pane, err := currentPane(socketPath)
	if err != nil {
		logging.Error(fmt.Errorf("resolve target pane: %w", err))
		return ""
	}
	return pane
}
