package app

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/vgallery/internal/prefs"
)

func TestLoadConfig_FallsBackToLastConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "show.toml")
	body := "gallery = \"#gallery\"\nimages = [\"a.png\"]\n\n[layout]\ncell_width = 10\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := loadConfig(Options{}, prefs.Prefs{LastConfig: path})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.Layout.CellWidth != 10 {
		t.Fatalf("CellWidth = %d, want 10 from file", cfg.Layout.CellWidth)
	}
}

func TestLoadConfig_FlagCellSizeWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "show.toml")
	body := "[layout]\ncell_width = 10\ncell_height = 20\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := loadConfig(Options{ConfigPath: path, CellHeight: 24}, prefs.Prefs{})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Layout.CellWidth != 10 || cfg.Layout.CellHeight != 24 {
		t.Fatalf("Layout = %+v, want 10x24", cfg.Layout)
	}
}

func TestLoadConfig_InvalidFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("images = [\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := loadConfig(Options{ConfigPath: path}, prefs.Prefs{}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpenLog_CreatesDirectories(t *testing.T) {
	out := log.Writer()
	flags, prefix := log.Flags(), log.Prefix()
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetFlags(flags)
		log.SetPrefix(prefix)
	})

	path := filepath.Join(t.TempDir(), "state", "nested", "vgallery.log")
	resolved, file, err := openLog(path)
	if err != nil {
		t.Fatalf("openLog: %v", err)
	}
	defer file.Close()

	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	log.Print("hello")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("standard logger not redirected to the log file")
	}
}
