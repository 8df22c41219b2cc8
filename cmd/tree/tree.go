package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/willbeason/webtree/pkg/export"
	"github.com/willbeason/webtree/pkg/render"
	"github.com/willbeason/webtree/pkg/tree"
)

const (
	outFlag    = "out"
	randomFlag = "random"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Draw recursive fractal trees",
		Long: `Draw a fractal tree: a trunk that splits into two mirrored branches,
each shorter than its parent, until branches fall below the minimum length.

Without a subcommand, renders one image to --out.`,
		Args: cobra.ExactArgs(0),
		RunE: runCmd,
	}

	addSettingsFlags(cmd)
	addRenderFlags(cmd)

	cmd.AddCommand(
		renderCmd(),
		watchCmd(),
		copyCmd(),
		controlsCmd(),
		serveCmd(),
		mcpCmd(),
	)

	return cmd
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the tree to a PNG file",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}
	addRenderFlags(cmd)
	return cmd
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(outFlag, "o", "", "output PNG file (default from settings, else "+export.DefaultFileName+")")
	cmd.Flags().Bool(randomFlag, false, "pick every control at random")
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	if random, _ := cmd.Flags().GetBool(randomFlag); random {
		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		cfg.Controls = tree.RandomControls(r)
	}
	if out, _ := cmd.Flags().GetString(outFlag); out != "" {
		cfg.Output = out
	}

	svc, logger, err := newService(cfg, nil)
	if err != nil {
		return err
	}
	logger.Debug("controls", "values", cfg.Controls.Values())

	_, err = svc.Save(render.TriggerCLI, cfg.Output, cfg.Params(), cfg.Width, cfg.Height)
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := mainCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
