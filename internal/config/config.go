package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/vgallery/internal/gallery"
)

// Config is a loaded gallery file.
type Config struct {
	Path    string // resolved file path, empty when no file was found
	Dir     string // base for relative image references
	Gallery gallery.Overrides
	Layout  Layout
}

// Layout sizes the terminal containers the gallery renders into.
type Layout struct {
	CellWidth  int `toml:"cell_width" json:"cell_width"`   // virtual pixels per column
	CellHeight int `toml:"cell_height" json:"cell_height"` // virtual pixels per row
	StripRows  int `toml:"strip_rows" json:"strip_rows"`
	DotRows    int `toml:"dot_rows" json:"dot_rows"`
	ButtonCols int `toml:"button_cols" json:"button_cols"`
	TextRows   int `toml:"text_rows" json:"text_rows"`
}

const (
	defaultConfigPath = "~/.config/vgallery/gallery.toml"
	defaultLogPath    = "~/.local/state/vgallery/vgallery.log"
)

// DefaultLayout returns the layout used for absent or non-positive fields.
func DefaultLayout() Layout {
	return Layout{
		CellWidth:  8,
		CellHeight: 16,
		StripRows:  6,
		DotRows:    1,
		ButtonCols: 4,
		TextRows:   2,
	}
}

// Load locates and parses a gallery file, TOML unless the extension is .json
// or .jsonc. A missing file is not an error: the gallery then reports its
// missing options itself.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Layout: DefaultLayout()}
	if wd, err := os.Getwd(); err == nil {
		cfg.Dir = wd
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var layout struct {
		Layout *Layout `toml:"layout" json:"layout"`
	}
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".json", ".jsonc":
		plain := jsonc.ToJSON(bytes)
		if err := json.Unmarshal(plain, &cfg.Gallery); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if err := json.Unmarshal(plain, &layout); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	default:
		if err := toml.Unmarshal(bytes, &cfg.Gallery); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &layout); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Path = resolved
	cfg.Dir = filepath.Dir(resolved)
	if layout.Layout != nil {
		cfg.Layout = cfg.Layout.Merge(*layout.Layout)
	}
	return cfg, nil
}

// Merge returns l with every positive field of o applied.
func (l Layout) Merge(o Layout) Layout {
	pick := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	pick(&l.CellWidth, o.CellWidth)
	pick(&l.CellHeight, o.CellHeight)
	pick(&l.StripRows, o.StripRows)
	pick(&l.DotRows, o.DotRows)
	pick(&l.ButtonCols, o.ButtonCols)
	pick(&l.TextRows, o.TextRows)
	return l
}

// DefaultLogPath returns where diagnostics are written unless overridden.
func DefaultLogPath() string {
	return mustExpand(defaultLogPath)
}

// ExpandPath resolves a leading "~" and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
