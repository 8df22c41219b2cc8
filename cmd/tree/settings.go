package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/willbeason/webtree/internal/logging"
	"github.com/willbeason/webtree/pkg/config"
	"github.com/willbeason/webtree/pkg/metrics"
	"github.com/willbeason/webtree/pkg/render"
	"github.com/willbeason/webtree/pkg/tree"
)

const (
	configFlag   = "config"
	logLevelFlag = "log-level"
	widthFlag    = "width"
	heightFlag   = "height"
	maxDepthFlag = "max-depth"
)

// controlFlag names the flag for a control. The height control is renamed
// so that --height stays the image height.
func controlFlag(name string) string {
	if name == tree.Height {
		return "height-factor"
	}
	return name
}

func addSettingsFlags(cmd *cobra.Command) {
	defaults := config.Default()

	flags := cmd.PersistentFlags()
	flags.String(configFlag, "", "YAML or TOML settings file")
	flags.String(logLevelFlag, defaults.LogLevel, "log level: debug, info, warn or error")
	flags.Int(widthFlag, defaults.Width, "image width in pixels")
	flags.Int(heightFlag, defaults.Height, "image height in pixels")
	flags.Int(maxDepthFlag, defaults.MaxDepth, "maximum recursion depth")

	for _, d := range tree.Definitions {
		flags.Float64(controlFlag(d.Name), d.Default,
			fmt.Sprintf("%s (%g to %g)", d.Description, d.Min, d.Max))
	}
}

// settings reads the settings file, if any, and overlays the flags the user set.
func settings(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if path, _ := flags.GetString(configFlag); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if flags.Changed(logLevelFlag) {
		cfg.LogLevel, _ = flags.GetString(logLevelFlag)
	}
	if flags.Changed(widthFlag) {
		cfg.Width, _ = flags.GetInt(widthFlag)
	}
	if flags.Changed(heightFlag) {
		cfg.Height, _ = flags.GetInt(heightFlag)
	}
	if flags.Changed(maxDepthFlag) {
		cfg.MaxDepth, _ = flags.GetInt(maxDepthFlag)
	}

	overrides := make(map[string]any)
	for _, name := range tree.Names() {
		if flags.Changed(controlFlag(name)) {
			overrides[name], _ = flags.GetFloat64(controlFlag(name))
		}
	}
	if err := cfg.Controls.Apply(overrides); err != nil {
		return config.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newService builds the logger and render service for cfg. m may be nil.
func newService(cfg config.Config, m *metrics.Render) (*render.Service, *slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(level)
	return render.New(logger, m), logger, nil
}
