package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Yuminaga-Ten/Ease/internal/server"
	"github.com/Yuminaga-Ten/Ease/pkg/config"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "ease",
		Short: "Settlement builder: grid placement, road painting and connectivity",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every controller step")

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a settlement config",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func replayCmd() *cobra.Command {
	var (
		png  string
		dump bool
	)

	cmd := &cobra.Command{
		Use:   "replay [project-path] [script...]",
		Short: "Replay input scripts against a fresh session and check their expectations",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runReplay(args[0], args[1:], png, dump)
		},
	}

	cmd.Flags().StringVarP(&png, "png", "o", "", "write the final map of the last script to this PNG file")
	cmd.Flags().BoolVar(&dump, "scene", false, "print the final scene graph as JSON")
	return cmd
}

func renderCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render [project-path]",
		Short: "Draw the empty settlement map to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRender(args[0], out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "map.png", "output PNG path")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local inspector with scripted input",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.LoadProject(args[0])
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			srv, err := server.New(cfg, port)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
