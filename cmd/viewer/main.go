package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"logo-scene/app"
	"logo-scene/assets"
	"logo-scene/config"
)

type flags struct {
	config   string
	model    string
	envmap   string
	preset   string
	logLevel string
	shadows  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "viewer",
		Short: "Interactive logo scene",
		Long: `viewer - interactive logo scene

Shows a torus and a reflective glTF logo lit by two rect-area lights.

Controls:
  Left drag   - Orbit
  Right drag  - Pan
  Scroll      - Zoom
  Click       - Toggle wireframe on the object under the cursor
  Panel       - Tune transforms, material, lights and shadows`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			log, err := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return app.Run(ctx, log, cfg)
		},
	}
	bindFlags(cmd, &f)

	cmd.AddCommand(newInfoCmd())
	return cmd
}

func bindFlags(cmd *cobra.Command, f *flags) {
	cmd.Flags().StringVar(&f.config, "config", "", "Config file (.toml, .yaml)")
	cmd.Flags().StringVar(&f.model, "model", "", "glTF/GLB model to load")
	cmd.Flags().StringVar(&f.envmap, "envmap", "", "Directory holding the six cube map faces")
	cmd.Flags().StringVar(&f.preset, "preset", "", "Panel preset file (TOML)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&f.shadows, "shadows", false, "Start with shadow rendering on")
}

// resolveConfig loads the config file, if any, and lays set flags over it.
func resolveConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	set := cmd.Flags().Changed
	if set("model") {
		cfg.Assets.Model = f.model
	}
	if set("envmap") {
		cfg.Assets.EnvMap = f.envmap
	}
	if set("preset") {
		cfg.Preset.Path = f.preset
	}
	if set("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if set("shadows") {
		cfg.Render.Shadows = f.shadows
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	l, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <model.glb|model.gltf>",
		Short: "Display model information",
		Long:  "Display the node tree summary, vertex and triangle counts and bounding box of a glTF model.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.OutOrStdout(), args[0])
		},
	}
}

func runInfo(w io.Writer, path string) error {
	info, err := assets.Inspect(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "File:       %s\n", info.Path)
	fmt.Fprintf(w, "Top level:  %d %v\n", len(info.TopLevel), info.TopLevel)
	fmt.Fprintf(w, "Nodes:      %d\n", info.Nodes)
	fmt.Fprintf(w, "Meshes:     %d\n", info.Meshes)
	fmt.Fprintf(w, "Vertices:   %d\n", info.Vertices)
	fmt.Fprintf(w, "Triangles:  %d\n", info.Triangles)
	if info.HasContent {
		b := info.Bounds
		size := b.Max.Sub(b.Min)
		fmt.Fprintf(w, "Bounds:     (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
			b.Min.X(), b.Min.Y(), b.Min.Z(), b.Max.X(), b.Max.Y(), b.Max.Z())
		fmt.Fprintf(w, "Size:       %.3f x %.3f x %.3f\n", size.X(), size.Y(), size.Z())
	}
	return nil
}
