// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command glassdemo renders a liquid glass surface over a generated
// backdrop, moving a simulated pointer past it.
//
// Usage:
//
//	glassdemo -output glass.png -svg filter.svg -preset card -frames 12
//	glassdemo -backdrop photo.jpg -mode prominent
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/glass"
	"github.com/gogpu/glass/render"
)

const frameInterval = 16 * time.Millisecond

// options are the command-line settings besides the effect configuration.
type options struct {
	width, height int
	frames        int
	workers       int
	filters       bool
	backdrop      string
	output        string
	svg           string
}

func main() {
	var (
		width     = flag.Int("width", 800, "image width")
		height    = flag.Int("height", 500, "image height")
		output    = flag.String("output", "glass.png", "output PNG file")
		svgOut    = flag.String("svg", "", "also write the SVG filter to this file")
		backdrop  = flag.String("backdrop", "", "PNG, JPEG or WebP backdrop (default: generated)")
		config    = flag.String("config", "", "JSON effect configuration file")
		preset    = flag.String("preset", "", "preset name: "+strings.Join(glass.PresetNames(), ", "))
		mode      = flag.String("mode", "", "displacement mode: standard, polar, prominent or shader")
		overLight = flag.Bool("overlight", false, "tune the surface for a light backdrop")
		frames    = flag.Int("frames", 12, "frames to simulate")
		filters   = flag.Bool("filters", true, "evaluate the per-pixel filter graph")
		workers   = flag.Int("workers", 0, "render goroutines (0 = GOMAXPROCS, 1 = serial)")
		verbose   = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	glass.SetLogger(logger)

	cfg, err := loadConfig(*config, *preset, *mode, *overLight)
	if err != nil {
		logger.Error("invalid configuration", slog.Any("err", err))
		os.Exit(2)
	}

	opts := options{
		width:    *width,
		height:   *height,
		frames:   *frames,
		workers:  *workers,
		filters:  *filters,
		backdrop: *backdrop,
		output:   *output,
		svg:      *svgOut,
	}
	if err := run(logger, cfg, opts); err != nil {
		logger.Error("glassdemo failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func loadConfig(path, preset, mode string, overLight bool) (glass.EffectConfig, error) {
	cfg := glass.DefaultConfig()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		cfg, err = glass.DecodeConfig(f)
		_ = f.Close()
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if preset != "" {
		p, err := glass.LookupPreset(preset)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.With(p)
	}
	if mode != "" {
		m, err := glass.ParseMode(mode)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = m
	}
	if overLight {
		cfg.OverLight = true
	}
	return cfg, cfg.Validate()
}

func run(logger *slog.Logger, cfg glass.EffectConfig, o options) error {
	w, h, frames := o.width, o.height, o.frames
	background, err := loadBackdrop(o.backdrop, w, h, cfg.OverLight)
	if err != nil {
		return fmt.Errorf("backdrop: %w", err)
	}

	ropts := []render.SoftwareOption{
		render.WithFilters(o.filters),
		render.WithRenderLogger(logger),
	}
	if o.workers != 1 {
		ropts = append(ropts, render.WithWorkers(o.workers))
	}
	renderer := render.NewSoftwareRenderer(ropts...)
	defer func() { _ = renderer.Close() }()

	ctrl, err := glass.NewController(cfg,
		glass.WithCapabilities(renderer.Capabilities()),
		glass.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer func() { _ = ctrl.Close() }()

	bw, bh := float64(w)*0.45, float64(h)*0.28
	geom := glass.GeometryFromRect((float64(w)-bw)/2, (float64(h)-bh)/2, bw, bh)
	if err := ctrl.SetGeometry(geom); err != nil {
		return err
	}

	scene := render.NewScene(background)
	target := render.NewPixmapTarget(w, h)
	surface := -1

	ctrl.PointerEnter()
	start := time.Now()
	for i := 0; i < max(frames, 1); i++ {
		x, y := pointerPath(geom, i, frames)
		ctrl.PointerMove(x, y)

		desc, err := ctrl.Frame(frameInterval)
		if err != nil {
			return err
		}
		if surface < 0 {
			surface = scene.Add(desc)
		} else {
			scene.Replace(surface, desc)
		}
		if err := renderer.Render(target, scene); err != nil {
			return err
		}
		logger.Debug("frame",
			slog.Int("index", i),
			slog.String("transform", desc.Style.Transform),
			slog.Bool("settled", desc.Settled()))
	}

	if err := savePNG(o.output, target.Image()); err != nil {
		return err
	}

	desc := ctrl.Descriptor()
	stats := ctrl.Stats()
	rstats := renderer.Stats()
	logger.Info("rendered",
		slog.String("output", o.output),
		slog.String("mode", cfg.Mode.String()),
		slog.Int("frames", frames),
		slog.Int("workers", renderer.Workers()),
		slog.Duration("elapsed", time.Since(start)),
		slog.Uint64("generations", stats.Generations),
		slog.Uint64("graph_rebuilds", stats.GraphRebuilds),
		slog.Uint64("map_cache_hits", rstats.MapHits),
		slog.Uint64("map_cache_misses", rstats.MapMisses),
		slog.String("backdrop_filter", desc.Style.BackdropFilter()),
		slog.String("box_shadow", desc.Style.BoxShadow.CSS()))
	if err := ctrl.Err(); err != nil {
		logger.Warn("displacement generation failed during the run", slog.Any("err", err))
	}

	if o.svg != "" {
		f, err := os.Create(o.svg)
		if err != nil {
			return err
		}
		if err := desc.Graph.WriteSVG(f, "liquid-glass-filter", ""); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("wrote filter", slog.String("svg", o.svg), slog.String("graph", desc.Graph.String()))
	}
	return nil
}

// pointerPath sweeps the pointer from outside the left edge across the
// surface, ending near its top-right corner.
func pointerPath(g glass.Geometry, i, frames int) (x, y float64) {
	t := 1.0
	if frames > 1 {
		t = float64(i) / float64(frames-1)
	}
	x = g.Left() - g.Width*0.3 + t*g.Width*1.2
	y = g.CenterY + math.Sin(t*math.Pi)*g.Height*0.6
	return x, y
}

// loadBackdrop decodes the image at path and fits it to w×h, or draws the
// generated backdrop when path is empty.
func loadBackdrop(path string, w, h int, light bool) (image.Image, error) {
	if path == "" {
		return drawBackdrop(w, h, light)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	glass.Logger().Debug("loaded backdrop",
		slog.String("path", path),
		slog.String("format", format),
		slog.String("bounds", img.Bounds().String()))
	return render.FitBackground(img, w, h), nil
}

// drawBackdrop paints something with enough structure for refraction to
// show: a gradient, bright discs and thin stripes.
func drawBackdrop(w, h int, light bool) (image.Image, error) {
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()

	top, bottom := gg.RGB(0.08, 0.12, 0.3), gg.RGB(0.45, 0.2, 0.5)
	if light {
		top, bottom = gg.RGB(0.95, 0.95, 0.92), gg.RGB(0.8, 0.87, 0.95)
	}
	dc.SetFillBrush(gg.NewLinearGradientBrush(0, 0, 0, float64(h)).
		AddColorStop(0, top).
		AddColorStop(1, bottom))
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	if err := dc.Fill(); err != nil {
		return nil, err
	}

	for i := 0; i < 6; i++ {
		dc.SetColor(gg.HSL(float64(i)*60, 0.8, 0.6))
		dc.DrawCircle(float64(w)*(0.1+0.16*float64(i)), float64(h)*(0.3+0.4*float64(i%2)), float64(h)*0.12)
		if err := dc.Fill(); err != nil {
			return nil, err
		}
	}

	dc.SetRGBA(1, 1, 1, 0.35)
	for x := 0.0; x < float64(w); x += 24 {
		dc.DrawRectangle(x, 0, 3, float64(h))
	}
	if err := dc.Fill(); err != nil {
		return nil, err
	}

	// The context is closed on return; keep a copy of its pixels.
	img := dc.Image()
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
