package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/willbeason/webtree/pkg/export"
	"github.com/willbeason/webtree/pkg/mcp"
	"github.com/willbeason/webtree/pkg/metrics"
	"github.com/willbeason/webtree/pkg/notify"
	"github.com/willbeason/webtree/pkg/render"
	"github.com/willbeason/webtree/pkg/server"
	"github.com/willbeason/webtree/pkg/tree"
	"github.com/willbeason/webtree/pkg/watch"
)

const (
	addrFlag        = "addr"
	shutdownTimeout = 5 * time.Second
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <controls file>",
		Short: "Re-render whenever a YAML or TOML controls file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := settings(cmd)
			if err != nil {
				return err
			}
			if out, _ := cmd.Flags().GetString(outFlag); out != "" {
				cfg.Output = out
			}

			svc, logger, err := newService(cfg, nil)
			if err != nil {
				return err
			}

			w := watch.New(svc, logger, watch.Options{
				Controls: args[0],
				Output:   cfg.Output,
				Width:    cfg.Width,
				Height:   cfg.Height,
				MaxDepth: cfg.MaxDepth,
			})
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().StringP(outFlag, "o", "", "output PNG file")
	return cmd
}

func copyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Copy the tree to the terminal clipboard",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			cfg, err := settings(cmd)
			if err != nil {
				return err
			}

			svc, _, err := newService(cfg, nil)
			if err != nil {
				return err
			}

			data, _, err := svc.PNG(render.TriggerCLI, cfg.Params(), cfg.Width, cfg.Height)
			if err == nil {
				err = export.NewClipboard(os.Stdout).CopyPNG(data)
			}
			svc.Export("clipboard", err)

			// Failures are reported, not fatal.
			n := notify.New(notify.DefaultTimeout, notify.NewTerminal(os.Stderr))
			n.Show(export.ClipboardNotice(err))
			n.Dismiss()
			return nil
		},
	}
}

func controlsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "controls",
		Short: "List the controls and their ranges",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return err
			}

			out, err := r.Render(controlsTable())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

// controlsTable lists every control as a markdown table.
func controlsTable() string {
	b := &strings.Builder{}
	b.WriteString("# Controls\n\n")
	b.WriteString("| Control | Flag | Default | Min | Max | Step | Description |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, d := range tree.Definitions {
		fmt.Fprintf(b, "| %s | `--%s` | %g | %g | %g | %g | %s |\n",
			d.Label, controlFlag(d.Name), d.Default, d.Min, d.Max, d.Step, d.Description)
	}
	b.WriteString("\nThe branching threshold is `10 - branching`: moving the slider up lets shorter branches grow.\n")
	return b.String()
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the slider page over HTTP",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			cfg, err := settings(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed(addrFlag) {
				cfg.Addr, _ = cmd.Flags().GetString(addrFlag)
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())

			svc, logger, err := newService(cfg, metrics.NewRender(reg))
			if err != nil {
				return err
			}

			s := server.New(svc, logger, server.Options{
				Width:    cfg.Width,
				Height:   cfg.Height,
				MaxDepth: cfg.MaxDepth,
				Controls: cfg.Controls,
				Gatherer: reg,
			})

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           s.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("serving", "addr", srv.Addr)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				return err
			case <-cmd.Context().Done():
				logger.Info("shutting down")

				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
					return srv.Close()
				}
				if err := <-serverErrors; !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		},
	}
	cmd.Flags().String(addrFlag, ":8080", "listen address")
	return cmd
}

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the render_tree tool over MCP on stdio",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			cfg, err := settings(cmd)
			if err != nil {
				return err
			}

			// Logs go to Stderr so JSON-RPC on Stdout stays intact.
			svc, logger, err := newService(cfg, nil)
			if err != nil {
				return err
			}

			s := mcp.NewServer(svc, logger, mcp.Options{
				Width:    cfg.Width,
				Height:   cfg.Height,
				MaxDepth: cfg.MaxDepth,
				Controls: cfg.Controls,
			})

			logger.Info("serving MCP on stdio")
			return s.ServeStdio()
		},
	}
}
