// Command linedemo shows sprites stretched into lines: a static rope,
// scripted beams and a chipmunk pendulum, all driven through the line
// package.
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteline/internal/config"
	"github.com/milk9111/spriteline/internal/logging"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		envFile  string
		scene    string
		width    int
		height   int
		debug    bool
		watch    bool
		logLevel string
	)

	cmd := &cobra.Command{
		Use:           "linedemo",
		Short:         "Stretched sprite line demo",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("scene") {
				cfg.Scene = scene
			}
			if flags.Changed("width") {
				cfg.Width = width
			}
			if flags.Changed("height") {
				cfg.Height = height
			}
			if flags.Changed("debug") {
				cfg.Debug = debug
			}
			if flags.Changed("watch") {
				cfg.Watch = watch
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			game, err := NewGame(cfg, log)
			if err != nil {
				return err
			}
			defer game.Close()

			ebiten.SetWindowSize(cfg.Width, cfg.Height)
			ebiten.SetWindowTitle("linedemo")
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			return ebiten.RunGame(game)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file to load before the environment")
	flags.StringVar(&scene, "scene", "demo.yaml", "scene prefab to load")
	flags.IntVar(&width, "width", 1280, "logical screen width")
	flags.IntVar(&height, "height", 720, "logical screen height")
	flags.BoolVar(&debug, "debug", false, "draw endpoint markers and geometry")
	flags.BoolVar(&watch, "watch", true, "reload the scene when prefab files change")
	flags.StringVar(&logLevel, "log-level", "info", "log level")

	return cmd
}
