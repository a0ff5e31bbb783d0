// Package server serves rendered hex grid posters over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phanxgames/hexfolio/hexgrid"
	"github.com/phanxgames/hexfolio/internal/config"
	"github.com/phanxgames/hexfolio/poster"
)

const shutdownTimeout = 5 * time.Second

// Server renders a fresh poster per request from the configured grid,
// adjusted by query parameters.
type Server struct {
	cfg    config.Config
	engine *gin.Engine
}

// New builds the router with gin's logger and panic recovery.
func New(cfg config.Config) *Server {
	s := &Server{cfg: cfg, engine: gin.New()}
	s.engine.Use(gin.Logger(), gin.Recovery())

	s.engine.GET("/healthz", s.healthz)
	s.engine.GET("/modes", s.modes)
	s.engine.GET("/poster.png", s.poster)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) modes(c *gin.Context) {
	names := make([]string, 0, 4)
	for m := hexgrid.ModeFill; m <= hexgrid.ModeStrata; m++ {
		names = append(names, m.String())
	}
	c.JSON(http.StatusOK, gin.H{"modes": names, "default": s.cfg.Grid.Mode.String()})
}

func (s *Server) poster(c *gin.Context) {
	grid, opts, err := s.parsePoster(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	frame, err := poster.Render(grid, opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var buf bytes.Buffer
	if err := frame.EncodePNG(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// parsePoster overlays query parameters on the configured grid and poster
// defaults: mode, pph, hue, seed, w, h, t and caption.
func (s *Server) parsePoster(c *gin.Context) (hexgrid.Config, poster.Options, error) {
	grid := s.cfg.Grid
	opts := poster.Options{
		Width:   s.cfg.Poster.Width,
		Height:  s.cfg.Poster.Height,
		Time:    s.cfg.Poster.Time,
		Caption: s.cfg.Poster.Caption,
	}

	if v := c.Query("mode"); v != "" {
		m, err := hexgrid.ParseMode(v)
		if err != nil {
			return grid, opts, err
		}
		if m != grid.Mode {
			// Let the new mode choose its own pulse range.
			grid.Pulse.ScaleMin, grid.Pulse.ScaleMax = 0, 0
		}
		grid.Mode = m
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{"pph", &grid.PixelsPerHex},
		{"hue", &grid.Hue},
		{"t", &opts.Time},
	}
	for _, f := range floats {
		if v := c.Query(f.key); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return grid, opts, fmt.Errorf("query %s: %w", f.key, err)
			}
			*f.dst = x
		}
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"w", &opts.Width},
		{"h", &opts.Height},
	}
	for _, f := range ints {
		if v := c.Query(f.key); v != "" {
			x, err := strconv.Atoi(v)
			if err != nil {
				return grid, opts, fmt.Errorf("query %s: %w", f.key, err)
			}
			*f.dst = x
		}
	}
	if v := c.Query("seed"); v != "" {
		x, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return grid, opts, fmt.Errorf("query seed: %w", err)
		}
		grid.Seed = x
	}
	if v, ok := c.GetQuery("caption"); ok {
		opts.Caption = v
	}

	if opts.Width > s.cfg.Server.MaxWidth || opts.Height > s.cfg.Server.MaxHeight {
		return grid, opts, fmt.Errorf("size %dx%d exceeds %dx%d",
			opts.Width, opts.Height, s.cfg.Server.MaxWidth, s.cfg.Server.MaxHeight)
	}
	grid = grid.WithDefaults()
	opts.MaxCells = s.cfg.Server.MaxCells
	if n := hexgrid.CellCount(float64(opts.Width), float64(opts.Height), grid); n > opts.MaxCells {
		return grid, opts, fmt.Errorf("pph %v at %dx%d needs %d cells, limit %d",
			grid.PixelsPerHex, opts.Width, opts.Height, n, opts.MaxCells)
	}
	return grid, opts, nil
}
