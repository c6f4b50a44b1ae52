package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/five82/vgallery/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd(func(opts app.Options) error {
		return app.Run(ctx, opts)
	})
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "vgallery: %v\n", err)
		return 1
	}
	return 0
}

// newRootCmd builds the command line. Every flag can also be set through a
// VGALLERY_ environment variable (--log-file is VGALLERY_LOG_FILE); flags
// win over the environment.
func newRootCmd(runApp func(app.Options) error) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "vgallery [gallery-file]",
		Short: "Image carousel for the terminal",
		Long: `vgallery shows a rotating image gallery with thumbnails or indicator dots,
crossfades, captions and click-through links, configured by a TOML or JSONC
gallery file. Without a file argument the last opened one is used.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				v.Set("config", args[0])
			}
			return runApp(optionsFrom(v))
		},
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "gallery file, TOML or JSONC (default: last opened, then ~/.config/vgallery/gallery.toml)")
	flags.String("prefs", "", "preferences file (default ~/.config/vgallery/prefs.toml)")
	flags.String("theme", "", "color theme: Nord, Nightfox, Kanagawa or Slate (default: saved preference)")
	flags.String("log-file", "", "diagnostics log (default ~/.local/state/vgallery/vgallery.log)")
	flags.BoolP("watch", "w", false, "rebuild the gallery when the gallery file changes")
	flags.Int("cell-width", 0, "virtual pixels per terminal column (default from the gallery file, else 8)")
	flags.Int("cell-height", 0, "virtual pixels per terminal row (default from the gallery file, else 16)")
	bindFlags(v, flags)

	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	v.SetEnvPrefix("VGALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}

func optionsFrom(v *viper.Viper) app.Options {
	return app.Options{
		ConfigPath: v.GetString("config"),
		PrefsPath:  v.GetString("prefs"),
		LogPath:    v.GetString("log-file"),
		Theme:      v.GetString("theme"),
		Watch:      v.GetBool("watch"),
		CellWidth:  v.GetInt("cell-width"),
		CellHeight: v.GetInt("cell-height"),
	}
}
