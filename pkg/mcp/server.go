// Package mcp exposes tree rendering as a Model Context Protocol tool.
package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/willbeason/webtree/pkg/export"
	"github.com/willbeason/webtree/pkg/render"
	"github.com/willbeason/webtree/pkg/tree"
)

const (
	// ToolName is the name clients call the render tool by.
	ToolName = "render_tree"

	Version = "0.1.0"
)

// Options set the defaults for tool arguments a client leaves out.
type Options struct {
	Width, Height int
	MaxDepth      int
	Controls      tree.Controls
}

// Server wraps an MCP server with the render_tree tool registered.
type Server struct {
	render    *render.Service
	logger    *slog.Logger
	opts      Options
	mcpServer *server.MCPServer
}

// NewServer creates a Server. Zero sizes default to 800x600.
func NewServer(svc *render.Service, logger *slog.Logger, opts Options) *Server {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}

	s := &Server{
		render:    svc,
		logger:    logger,
		opts:      opts,
		mcpServer: server.NewMCPServer("webtree", Version, server.WithToolCapabilities(false)),
	}
	s.mcpServer.AddTool(s.Tool(), s.handleRenderTree)
	return s
}

// ServeStdio serves on stdin and stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Tool describes render_tree: one optional number per control plus the
// image size.
func (s *Server) Tool() mcp.Tool {
	values := s.opts.Controls.Values()

	opts := []mcp.ToolOption{
		mcp.WithDescription("Render a fractal tree and return it as a PNG image."),
		mcp.WithNumber("width",
			mcp.Description(fmt.Sprintf("Image width in pixels, at most %d", export.MaxDimension)),
			mcp.DefaultNumber(float64(s.opts.Width)),
		),
		mcp.WithNumber("height",
			mcp.Description(fmt.Sprintf("Image height in pixels, at most %d", export.MaxDimension)),
			mcp.DefaultNumber(float64(s.opts.Height)),
		),
	}
	for _, d := range tree.Definitions {
		opts = append(opts, mcp.WithNumber(controlArg(d.Name),
			mcp.Description(fmt.Sprintf("%s. Slider range %g to %g", d.Description, d.Min, d.Max)),
			mcp.DefaultNumber(values[d.Name]),
		))
	}

	return mcp.NewTool(ToolName, opts...)
}

// controlArg keeps the height control apart from the image height.
func controlArg(name string) string {
	if name == tree.Height {
		return "height_factor"
	}
	return name
}

func (s *Server) handleRenderTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	width := request.GetInt("width", s.opts.Width)
	height := request.GetInt("height", s.opts.Height)
	if width <= 0 || height <= 0 || width > export.MaxDimension || height > export.MaxDimension {
		return mcp.NewToolResultError(fmt.Sprintf("width and height must be in [1, %d]", export.MaxDimension)), nil
	}

	args := request.GetArguments()
	overrides := make(map[string]any)
	for _, name := range tree.Names() {
		if v, ok := args[controlArg(name)]; ok {
			overrides[name] = v
		}
	}

	c := s.opts.Controls
	if err := c.Apply(overrides); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := c.Params()
	params.MaxDepth = s.opts.MaxDepth

	data, stats, err := s.render.PNG(render.TriggerMCP, params, width, height)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	text := fmt.Sprintf("Fractal tree, %dx%d, %d segments to depth %d.", width, height, stats.Segments, stats.Depth)
	if stats.Truncated {
		text += " Stopped at the maximum depth."
	}

	s.logger.Debug("mcp render", "width", width, "height", height, "segments", stats.Segments)
	return mcp.NewToolResultImage(text, base64.StdEncoding.EncodeToString(data), "image/png"), nil
}
