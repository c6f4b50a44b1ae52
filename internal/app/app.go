package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/vgallery/internal/config"
	"github.com/five82/vgallery/internal/prefs"
	"github.com/five82/vgallery/internal/ui"
)

// Options configure the vgallery application.
type Options struct {
	ConfigPath string // empty uses the last opened file, then the default
	PrefsPath  string // empty uses default ~/.config/vgallery/prefs.toml
	LogPath    string // empty uses default ~/.local/state/vgallery/vgallery.log
	Theme      string // overrides the saved theme
	Watch      bool   // reload the gallery when the config file changes

	// Cell size in virtual pixels; zero keeps the config file's value.
	CellWidth  int
	CellHeight int
}

// Run boots the vgallery TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	cfg, err := loadConfig(opts, userPrefs)
	if err != nil {
		return err
	}

	logPath, logFile, err := openLog(opts.LogPath)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("starting", slog.String("config", cfg.Path), slog.Bool("watch", opts.Watch))

	if cfg.Path != "" && cfg.Path != userPrefs.LastConfig {
		if err := prefs.Update(opts.PrefsPath, func(p *prefs.Prefs) { p.LastConfig = cfg.Path }); err != nil {
			logger.Warn("remember config path", slog.String("error", err.Error()))
		}
	}

	theme := strings.TrimSpace(opts.Theme)
	if theme == "" {
		theme = userPrefs.Theme
	}

	program := ui.NewProgram(ui.Options{
		Context:   ctx,
		Config:    cfg,
		Logger:    logger,
		LogPath:   logPath,
		ThemeName: theme,
		PrefsPath: opts.PrefsPath,
	})

	if opts.Watch {
		if cfg.Path == "" {
			logger.Warn("nothing to watch: no config file loaded")
		} else {
			watcher, err := WatchConfig(ctx, cfg.Path, 0,
				func(next config.Config) {
					next.Layout = withCellSize(next.Layout, opts)
					logger.Info("config changed, rebuilding gallery", slog.String("config", next.Path))
					program.Send(ui.ReloadMsg{Config: next})
				},
				func(err error) {
					logger.Error("reload config", slog.String("error", err.Error()))
				},
			)
			if err != nil {
				return err
			}
			defer func() { _ = watcher.Close() }()
		}
	}

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// loadConfig reads the gallery file named by opts, falling back to the one
// opened last.
func loadConfig(opts Options, userPrefs prefs.Prefs) (config.Config, error) {
	path := opts.ConfigPath
	if strings.TrimSpace(path) == "" {
		path = userPrefs.LastConfig
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load gallery config: %w", err)
	}
	cfg.Layout = withCellSize(cfg.Layout, opts)
	return cfg, nil
}

func withCellSize(l config.Layout, opts Options) config.Layout {
	return l.Merge(config.Layout{CellWidth: opts.CellWidth, CellHeight: opts.CellHeight})
}

// openLog opens the diagnostics log for appending and points the standard
// logger at it too, so library output never lands on the TUI.
func openLog(path string) (string, *os.File, error) {
	if strings.TrimSpace(path) == "" {
		path = config.DefaultLogPath()
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return "", nil, fmt.Errorf("resolve log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return "", nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := tea.LogToFile(resolved, "vgallery")
	if err != nil {
		return "", nil, fmt.Errorf("open log: %w", err)
	}
	return resolved, file, nil
}
