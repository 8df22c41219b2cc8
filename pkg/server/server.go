// Package server serves the tree over HTTP: a page of sliders, a JSON API
// to change the controls and PNG endpoints that render them.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/willbeason/webtree/pkg/export"
	"github.com/willbeason/webtree/pkg/notify"
	"github.com/willbeason/webtree/pkg/render"
	"github.com/willbeason/webtree/pkg/tree"
)

// MaxDimension caps the width and height a request may ask for.
const MaxDimension = export.MaxDimension

// Options configure a Server. A zero size is 800x600, zero Controls are the
// defaults and a zero MaxDepth is tree.DefaultMaxDepth.
type Options struct {
	Width, Height int
	MaxDepth      int
	Controls      tree.Controls
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	Notifier *notify.Notifier
}

// Server holds the controls shared by every client of one process.
type Server struct {
	render   *render.Service
	logger   *slog.Logger
	notifier *notify.Notifier
	gatherer prometheus.Gatherer

	width, height int
	maxDepth      int

	mu       sync.RWMutex
	controls tree.Controls
}

// New returns a Server starting from opts.Controls.
func New(svc *render.Service, logger *slog.Logger, opts Options) *Server {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.Controls == (tree.Controls{}) {
		opts.Controls = tree.DefaultControls()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.New(notify.DefaultTimeout)
	}

	return &Server{
		render:   svc,
		logger:   logger,
		notifier: opts.Notifier,
		gatherer: opts.Gatherer,
		width:    opts.Width,
		height:   opts.Height,
		maxDepth: opts.MaxDepth,
		controls: opts.Controls,
	}
}

// Handler routes every endpoint.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.Page)
	r.Get("/tree.png", s.TreePNG)
	r.Get("/image.png", s.SaveImage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/controls", s.GetControls)
		r.Post("/controls/reset", s.ResetAll)
		r.Put("/controls/{name}", s.SetControl)
		r.Post("/controls/{name}/reset", s.ResetControl)
		r.Get("/notification", s.GetNotification)
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// Controls returns a copy of the current controls.
func (s *Server) Controls() tree.Controls {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controls
}

// ControlsResponse is the body of every /api/controls response.
type ControlsResponse struct {
	Controls tree.Controls `json:"controls"`
	Params   tree.Params   `json:"params"`
}

func (s *Server) respondControls(w http.ResponseWriter, c tree.Controls) {
	s.respondJSON(w, ControlsResponse{Controls: c, Params: s.params(c)})
}

// respondJSON encodes v before writing so that an encoding failure is a 500
// rather than an empty 200.
func (s *Server) respondJSON(w http.ResponseWriter, v any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
		http.Error(w, "Encode error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Debug("json response write failed", "error", err)
	}
}

func (s *Server) params(c tree.Controls) tree.Params {
	p := c.Params()
	p.MaxDepth = s.maxDepth
	return p
}

// GetControls handles GET /api/controls.
func (s *Server) GetControls(w http.ResponseWriter, _ *http.Request) {
	s.respondControls(w, s.Controls())
}

// SetControl handles PUT /api/controls/{name}?value=.
func (s *Server) SetControl(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	value := r.FormValue("value")
	if value == "" {
		s.controlError(w, fmt.Errorf("%w: missing value for %q", tree.ErrNotNumeric, name))
		return
	}

	s.mu.Lock()
	next := s.controls
	err := next.Set(name, value)
	if err == nil {
		s.controls = next
	}
	s.mu.Unlock()

	if err != nil {
		s.controlError(w, err)
		return
	}

	s.logger.Debug("control set", "name", name, "value", value)
	s.respondControls(w, next)
}

// ResetControl handles POST /api/controls/{name}/reset.
func (s *Server) ResetControl(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	next := s.controls
	err := next.Reset(name)
	if err == nil {
		s.controls = next
	}
	s.mu.Unlock()

	if err != nil {
		s.controlError(w, err)
		return
	}

	s.logger.Debug("control reset", "name", name)
	s.respondControls(w, next)
}

// ResetAll handles POST /api/controls/reset.
func (s *Server) ResetAll(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.controls.ResetAll()
	next := s.controls
	s.mu.Unlock()

	s.logger.Debug("controls reset")
	s.respondControls(w, next)
}

func (s *Server) controlError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tree.ErrUnknownControl):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, tree.ErrNotNumeric):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
	s.logger.Warn("control rejected", "error", err)
}

// TreePNG handles GET /tree.png. The query parameters w and h set the image
// size, and control names override the current controls for this image only.
func (s *Server) TreePNG(w http.ResponseWriter, r *http.Request) {
	s.servePNG(w, r, "")
}

// SaveImage handles GET /image.png, the same image as a download.
func (s *Server) SaveImage(w http.ResponseWriter, r *http.Request) {
	s.servePNG(w, r, export.DefaultFileName)
}

func (s *Server) servePNG(w http.ResponseWriter, r *http.Request, attachment string) {
	width, height, err := s.size(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := s.requestControls(r)
	if err != nil {
		s.controlError(w, err)
		return
	}

	data, _, err := s.render.PNG(render.TriggerHTTP, s.params(c), width, height)
	if attachment != "" {
		s.render.Export("file", err)
	}
	if err != nil {
		s.notifier.Show(notify.Error, "Unable to render the tree as an image.")
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if attachment != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment))
	}
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("png response write failed", "error", err)
	}
}

// requestControls overlays control values from the query onto the current
// controls for this request only.
func (s *Server) requestControls(r *http.Request) (tree.Controls, error) {
	c := s.Controls()

	overrides := make(map[string]any)
	for _, name := range tree.Names() {
		if v := r.URL.Query().Get(name); v != "" {
			overrides[name] = v
		}
	}
	if len(overrides) == 0 {
		return c, nil
	}

	if err := c.Apply(overrides); err != nil {
		return tree.Controls{}, err
	}
	return c, nil
}

func (s *Server) size(r *http.Request) (int, int, error) {
	width, err := dimension(r, "w", s.width)
	if err != nil {
		return 0, 0, err
	}
	height, err := dimension(r, "h", s.height)
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func dimension(r *http.Request, key string, fallback int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > MaxDimension {
		return 0, fmt.Errorf("%s must be an integer in [1, %d]", key, MaxDimension)
	}
	return n, nil
}

// GetNotification handles GET /api/notification.
func (s *Server) GetNotification(w http.ResponseWriter, _ *http.Request) {
	n, ok := s.notifier.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.respondJSON(w, n)
}
