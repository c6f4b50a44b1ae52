// Package app provides the orchestration layer for the vgallery application.
//
// # Overview
//
// This package wires together configuration, preferences, logging, the
// config watcher and the UI. It is the composition root where everything is
// initialized and connected.
//
// # Architecture
//
//  1. Load preferences (theme, last opened gallery file)
//  2. Load the gallery file named on the command line, else the last one
//  3. Open the diagnostics log and point both slog and the standard logger
//     at it, since the terminal belongs to the TUI
//  4. Remember the gallery file for next time
//  5. Build the Bubble Tea program
//  6. With --watch, start the config watcher
//  7. Run the program until the user quits or the context is cancelled
//
// # Components
//
//   - app.go: Run, config and log setup
//   - watcher.go: fsnotify watcher that reloads the gallery file
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> prefs.Load()       Theme and last config
//	       ├─────> config.Load()      Gallery options + layout
//	       ├─────> openLog()          slog + log → vgallery.log
//	       ├─────> ui.NewProgram()    Bubble Tea program
//	       ├─────> WatchConfig()      optional
//	       └─────> program.Run()      blocks
//
//	Watcher:
//	┌─────────────────────────────────────────┐
//	│ fsnotify event on the config file       │
//	│  ├─> debounce                           │
//	│  ├─> config.Load()                      │
//	│  └─> program.Send(ui.ReloadMsg)         │
//	│      └─> UI builds a fresh gallery      │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Gallery file present but unreadable or invalid
//   - Log file cannot be created
//   - Watcher cannot be started
//   - Terminal failures
//
// Recoverable errors (logged, the gallery keeps running):
//   - Configuration diagnostics (missing options, absent containers)
//   - Images that fail to load
//   - A reload that fails to parse; the previous gallery stays up
//   - Preference writes
//
// A missing gallery file is not fatal: the gallery starts with defaults and
// reports what is missing in its status line and the log.
package app
