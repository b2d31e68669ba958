// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/glass"
	"github.com/gogpu/glass/displacement"
	"github.com/gogpu/glass/internal/filter"
	"github.com/gogpu/glass/internal/parallel"
)

// SoftwareRenderer composites glass surfaces on the CPU.
//
// Shapes and gradients are rasterized with gg; blur, displacement and
// blending run on float32 premultiplied rasters.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	target := render.NewPixmapTarget(800, 600)
//	scene := render.NewScene(background)
//	scene.Add(desc)
//
//	renderer.Render(target, scene)
//	img := target.Image()
type SoftwareRenderer struct {
	// filters enables evaluation of per-pixel filter graphs.
	filters bool

	// maps caches displacement maps fitted to surface sizes.
	maps *mapCache

	// bgSrc and bgImg cache the converted scene background.
	bgSrc image.Image
	bgImg *filter.Image

	// pool spreads per-row work across goroutines. Nil runs serially.
	pool *parallel.WorkerPool

	logger *slog.Logger
}

// SoftwareOption configures a SoftwareRenderer.
type SoftwareOption func(*SoftwareRenderer)

// WithMapCacheSize sets how many fitted displacement maps the renderer
// keeps. Zero means unlimited.
func WithMapCacheSize(n int) SoftwareOption {
	return func(r *SoftwareRenderer) {
		r.maps = r.newMapCache(max(n, 0))
	}
}

// WithFilters enables or disables per-pixel filter evaluation. A renderer
// without filters draws only the backdrop, tints, shadow and highlights,
// and reports so through Capabilities.
func WithFilters(enabled bool) SoftwareOption {
	return func(r *SoftwareRenderer) {
		r.filters = enabled
	}
}

// WithWorkers spreads displacement and target conversion across n
// goroutines. n <= 0 uses GOMAXPROCS. Call Close to stop the workers.
func WithWorkers(n int) SoftwareOption {
	return func(r *SoftwareRenderer) {
		if r.pool != nil {
			r.pool.Close()
		}
		r.pool = parallel.NewWorkerPool(n)
	}
}

// WithRenderLogger sets the logger for the renderer. The default is
// glass.Logger().
func WithRenderLogger(l *slog.Logger) SoftwareOption {
	return func(r *SoftwareRenderer) {
		r.logger = l
	}
}

// NewSoftwareRenderer creates a new CPU-based software renderer.
func NewSoftwareRenderer(opts ...SoftwareOption) *SoftwareRenderer {
	r := &SoftwareRenderer{filters: true}
	r.maps = r.newMapCache(DefaultMapCacheSize)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *SoftwareRenderer) newMapCache(capacity int) *mapCache {
	return newMapCache(capacity, func(w, h int, m *displacement.Map) {
		r.log().Debug("render: dropped fitted map",
			slog.Int("width", w),
			slog.Int("height", h),
			slog.Bool("released", m.Released()))
	})
}

func (r *SoftwareRenderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return glass.Logger()
}

// Capabilities reports whether the renderer evaluates filter graphs.
func (r *SoftwareRenderer) Capabilities() glass.Capabilities {
	return glass.Capabilities{PerPixelFilters: r.filters}
}

// Render composites the scene onto the target.
//
// On a full redraw the background is drawn over the whole target, or the
// target's current contents are kept if the scene has none. Otherwise only
// the union of the dirty rectangles is restored from the background and
// redrawn.
func (r *SoftwareRenderer) Render(target RenderTarget, scene *Scene) error {
	if target == nil {
		return ErrNilTarget
	}
	if scene == nil {
		return ErrNilScene
	}

	frame, err := readTarget(target, r.rows())
	if err != nil {
		return err
	}
	bounds := frame.Bounds()

	bg := scene.Background()
	full := scene.NeedsFullRedraw() || bg == nil
	region := bounds
	if !full {
		region = scene.DirtyBounds().Intersect(bounds)
		if region.Empty() {
			scene.ClearDirty()
			return nil
		}
	}

	// Surfaces sample backdrop past the dirty area, so restore a wider
	// ring and write back only the dirty area.
	restore := region
	if !full {
		grow := 0
		for _, d := range scene.Surfaces() {
			grow = max(grow, backdropMargin(d))
		}
		restore = region.Inset(-grow).Intersect(bounds)
	}

	if bg != nil {
		filter.Paste(frame, filter.Crop(r.background(bg), restore, false), restore.Min.X, restore.Min.Y)
	}

	drawn := 0
	for i, d := range scene.Surfaces() {
		if !full && !Extent(d).Overlaps(restore) {
			continue
		}
		if err := r.composite(frame, d); err != nil {
			return fmt.Errorf("render: surface %d: %w", i, err)
		}
		drawn++
	}

	writeTarget(target, frame, region, r.rows())
	r.log().Debug("render: frame",
		slog.Bool("full", full),
		slog.String("region", region.String()),
		slog.Int("surfaces", drawn))
	scene.ClearDirty()
	return nil
}

// Flush is a no-op; software rendering is synchronous.
func (r *SoftwareRenderer) Flush() error {
	return nil
}

// RenderStats describes the renderer's cache of fitted displacement maps.
type RenderStats struct {
	CachedMaps   int
	MapHits      uint64
	MapMisses    uint64
	MapEvictions uint64
}

// Stats returns the map cache counters.
func (r *SoftwareRenderer) Stats() RenderStats {
	s := r.maps.stats()
	return RenderStats{
		CachedMaps:   s.Len,
		MapHits:      s.Hits,
		MapMisses:    s.Misses,
		MapEvictions: s.Evictions,
	}
}

// Close stops the worker pool, if any, and drops cached maps. The renderer
// remains usable and runs serially afterwards.
func (r *SoftwareRenderer) Close() error {
	if r.pool != nil {
		r.pool.Close()
		r.pool = nil
	}
	r.maps.clear()
	return nil
}

// Workers returns the number of goroutines per-pixel passes are spread
// over, 1 without a worker pool.
func (r *SoftwareRenderer) Workers() int {
	if r.pool == nil || !r.pool.IsRunning() {
		return 1
	}
	return r.pool.Workers()
}

// rows returns the row runner for per-pixel passes.
func (r *SoftwareRenderer) rows() filter.RowRunner {
	if r.pool == nil {
		return filter.Serial
	}
	return r.pool.Rows
}

func (r *SoftwareRenderer) background(bg image.Image) *filter.Image {
	if r.bgImg == nil || r.bgSrc != bg {
		r.bgSrc = bg
		r.bgImg = filter.FromImage(bg)
	}
	return r.bgImg
}

// composite draws one surface onto dst in place.
func (r *SoftwareRenderer) composite(dst *filter.Image, d *glass.RenderDescriptor) error {
	p := Place(d)
	if p.Box.Empty() {
		return nil
	}
	w, h := p.Box.Dx(), p.Box.Dy()
	x, y := p.Box.Min.X, p.Box.Min.Y

	shape, err := roundedMask(w, h, image.Rect(0, 0, w, h), p.Radius)
	if err != nil {
		return err
	}

	// Tints are part of what the glass sees; its own shadow is not.
	if len(d.Tints) > 0 {
		tint := colorize(shape, gg.Black)
		for _, t := range d.Tints {
			filter.BlendAt(dst, tint, x, y, layerBlend(t.Blend), float32(t.Opacity))
		}
	}

	margin := backdropMargin(d)
	src := filter.Crop(dst, p.Box.Inset(-margin), true)
	drawShadow(dst, shape, p.Box, d.Style.BoxShadow)

	src = backdrop(src, d.Backdrop.BlurPx, d.Backdrop.SaturatePercent)
	inner := image.Rect(margin, margin, margin+w, margin+h)
	if r.filters && d.FilterEnabled && d.Graph != nil {
		src, err = r.evaluate(d.Graph, src, inner)
		if err != nil {
			return err
		}
	}
	filter.OverAt(dst, filter.In(filter.Crop(src, inner, false), shape), x, y)

	for _, l := range d.Highlights {
		if l.Opacity <= 0 {
			continue
		}
		ring, err := highlightRing(l, w, h, p.Radius)
		if err != nil {
			return err
		}
		filter.BlendAt(dst, ring, x, y, layerBlend(l.Blend), float32(l.Opacity))
	}
	return nil
}

// drawShadow draws the box shadow of shape, placed at box, outside the
// shape only.
func drawShadow(dst, shape *filter.Image, box image.Rectangle, s glass.BoxShadow) {
	if s.Color.A <= 0 {
		return
	}
	m := shadowMargin(s)
	padded := filter.NewImage(shape.Width+2*m, shape.Height+2*m)
	filter.Paste(padded, shape, m, m)

	shadow := filter.DropShadow(padded,
		int(math.Round(s.OffsetX)), int(math.Round(s.OffsetY)),
		filter.ShadowBlurSigma(s.BlurPx), s.Color)
	filter.OverAt(dst, filter.Out(shadow, padded), box.Min.X-m, box.Min.Y-m)
}

// readTarget converts the target's pixels to a float image.
func readTarget(t RenderTarget, run filter.RowRunner) (*filter.Image, error) {
	w, h, stride, pix := t.Width(), t.Height(), t.Stride(), t.Pixels()
	im := filter.NewImage(w, h)
	if w <= 0 || h <= 0 {
		return im, nil
	}
	if stride < w*4 || len(pix) < (h-1)*stride+w*4 {
		return nil, fmt.Errorf("%w: %d bytes, stride %d for %dx%d", ErrTargetSize, len(pix), stride, w, h)
	}
	run(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := pix[y*stride : y*stride+w*4]
			out := im.Pix[y*w*4 : (y+1)*w*4]
			for i, v := range row {
				out[i] = float32(v) / 255
			}
		}
	})
	return im, nil
}

// writeTarget stores the pixels of im inside r back into the target.
func writeTarget(t RenderTarget, im *filter.Image, r image.Rectangle, run filter.RowRunner) {
	pix, stride := t.Pixels(), t.Stride()
	r = r.Intersect(im.Bounds())
	run(r.Dy(), func(y0, y1 int) {
		for y := r.Min.Y + y0; y < r.Min.Y+y1; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c := im.RGBAAt(x, y)
				o := y*stride + x*4
				pix[o+0] = c.R
				pix[o+1] = c.G
				pix[o+2] = c.B
				pix[o+3] = c.A
			}
		}
	})
}

// Ensure SoftwareRenderer implements CapableRenderer.
var _ CapableRenderer = (*SoftwareRenderer)(nil)
