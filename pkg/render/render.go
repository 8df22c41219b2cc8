// Package render runs tree renders on behalf of the commands, recording
// metrics and logging renders that hit the depth bound.
package render

import (
	"log/slog"
	"time"

	"github.com/willbeason/webtree/pkg/export"
	"github.com/willbeason/webtree/pkg/metrics"
	"github.com/willbeason/webtree/pkg/tree"
)

// Triggers label what caused a render.
const (
	TriggerCLI   = "cli"
	TriggerHTTP  = "http"
	TriggerWatch = "watch"
	TriggerMCP   = "mcp"
)

type Service struct {
	logger  *slog.Logger
	metrics *metrics.Render
}

// New returns a Service. m may be nil to skip metrics.
func New(logger *slog.Logger, m *metrics.Render) *Service {
	return &Service{logger: logger, metrics: m}
}

// PNG renders params to an in-memory PNG.
func (s *Service) PNG(trigger string, params tree.Params, width, height int) ([]byte, tree.Stats, error) {
	start := time.Now()
	data, stats, err := export.PNGBytes(params, width, height)
	s.observe(trigger, params, stats, time.Since(start))

	if err != nil {
		s.logger.Error("render failed", "trigger", trigger, "error", err)
		return nil, stats, err
	}
	return data, stats, nil
}

// Save renders params into the PNG file at path.
func (s *Service) Save(trigger, path string, params tree.Params, width, height int) (tree.Stats, error) {
	start := time.Now()
	stats, err := export.SaveFile(path, params, width, height)
	s.observe(trigger, params, stats, time.Since(start))
	s.metrics.Export("file", err)

	if err != nil {
		s.logger.Error("saving image failed", "trigger", trigger, "path", path, "error", err)
		return stats, err
	}

	s.logger.Info("saved image", "path", path, "width", width, "height", height, "segments", stats.Segments)
	return stats, nil
}

// Export records the outcome of an export that happened outside the service.
func (s *Service) Export(kind string, err error) {
	s.metrics.Export(kind, err)
}

func (s *Service) observe(trigger string, params tree.Params, stats tree.Stats, elapsed time.Duration) {
	s.metrics.Observe(trigger, stats, elapsed)

	s.logger.Debug("rendered tree",
		"trigger", trigger,
		"segments", stats.Segments,
		"depth", stats.Depth,
		"elapsed", elapsed,
	)

	if stats.Truncated {
		s.logger.Warn("render stopped at maximum depth",
			"trigger", trigger,
			"depth", stats.Depth,
			"height_factor", params.HeightDecayFactor,
			"min_branch_length", params.MinBranchLength,
		)
	}
}
