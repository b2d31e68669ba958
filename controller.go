// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glass

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gogpu/glass/displacement"
	"github.com/gogpu/glass/elastic"
	"github.com/gogpu/glass/filtergraph"
)

// Controller drives one glass surface. It owns the surface's geometry
// snapshot, pointer state, displacement map and filter graph, and turns
// them into a RenderDescriptor once per frame.
//
// Controller methods must be called from the host's event loop, except
// PointerMove and ClearPointer, which may be called from any goroutine.
// Pointer moves are coalesced: only the latest sample is applied, at the
// next Frame.
type Controller struct {
	opts     controllerOptions
	provider *displacement.Provider

	cfg     EffectConfig
	geom    Geometry
	pointer PointerState
	slot    pointerSlot

	// current is the map in use: a built-in, the standard fallback, or a
	// generated map owned by the controller.
	current *displacement.Map

	// pending is set when a shader map must be generated at the current
	// size. failed and failedSize suppress retries until the size changes.
	pending     bool
	failedSize  [2]int
	failed      bool
	lastGenErr  error
	generations uint64

	ctx    context.Context
	cancel context.CancelFunc

	graph    *filtergraph.Graph
	graphKey graphKey
	rebuilds uint64

	transition *transition
	applied    uint64
	desc       *RenderDescriptor
	closed     bool
}

// graphKey identifies the inputs a filter graph was built from.
type graphKey struct {
	params filtergraph.Params
	m      *displacement.Map
	size   filtergraph.Size
}

// NewController creates a controller for a surface with configuration cfg.
// It returns an error wrapping ErrInvalidConfig or ErrUnsupportedMode if
// cfg does not validate.
func NewController(cfg EffectConfig, opts ...ControllerOption) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultControllerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller{
		opts:       o,
		cfg:        cfg,
		transition: newTransition(o.transition, o.easing),
	}
	c.provider = o.provider
	if c.provider == nil {
		c.provider = displacement.NewProvider(c.logger())
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	if cfg.Mode.Builtin() {
		c.current = displacement.Builtin(cfg.Mode)
	} else {
		c.current = displacement.Fallback()
		c.pending = true
	}
	return c, nil
}

func (c *Controller) logger() *slog.Logger {
	if c.opts.logger != nil {
		return c.opts.logger
	}
	return Logger()
}

// Config returns the current configuration.
func (c *Controller) Config() EffectConfig { return c.cfg }

// Geometry returns the current geometry snapshot.
func (c *Controller) Geometry() Geometry { return c.geom }

// Pointer returns the pointer state as of the last Frame.
func (c *Controller) Pointer() PointerState { return c.pointer }

// Map returns the displacement map currently in use.
func (c *Controller) Map() *displacement.Map { return c.current }

// Capabilities returns the substrate capabilities the controller was
// created with.
func (c *Controller) Capabilities() Capabilities { return c.opts.caps }

// Err returns the error of the most recent failed map generation, or nil
// if the last generation succeeded.
func (c *Controller) Err() error { return c.lastGenErr }

// SetGeometry records a new bounding box for the surface. In shader mode a
// size change schedules a new map; until it is generated at the next Frame
// the previous map stays in use.
func (c *Controller) SetGeometry(g Geometry) error {
	if c.closed {
		return ErrClosed
	}
	if g == c.geom {
		return nil
	}
	oldW, oldH := c.geom.PixelSize()
	newW, newH := g.PixelSize()
	c.geom = g
	if c.cfg.Mode == ModeShader && (oldW != newW || oldH != newH) {
		c.schedule()
	}
	return nil
}

// SetConfig replaces the configuration. On a mode change a built-in mode
// takes effect immediately and releases any generated map; switching to
// shader mode schedules generation.
func (c *Controller) SetConfig(cfg EffectConfig) error {
	if c.closed {
		return ErrClosed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	prev := c.cfg.Mode
	c.cfg = cfg
	if cfg.Mode == prev {
		return nil
	}

	c.logger().Debug("glass: mode changed", slog.String("from", prev.String()), slog.String("to", cfg.Mode.String()))
	if cfg.Mode.Builtin() {
		c.pending = false
		c.failed = false
		c.replaceMap(displacement.Builtin(cfg.Mode))
		return nil
	}
	if c.current == nil || c.current.Builtin() {
		c.replaceMap(displacement.Fallback())
	}
	c.schedule()
	return nil
}

func (c *Controller) schedule() {
	c.pending = true
	c.failed = false
}

// PointerEnter marks the surface hovered.
func (c *Controller) PointerEnter() { c.pointer.Hovered = true }

// PointerLeave clears the hovered flag.
func (c *Controller) PointerLeave() { c.pointer.Hovered = false }

// PointerDown marks the surface active.
func (c *Controller) PointerDown() { c.pointer.Active = true }

// PointerUp clears the active flag.
func (c *Controller) PointerUp() { c.pointer.Active = false }

// PointerMove records a pointer position in container coordinates. Only
// the latest position before a Frame is used.
func (c *Controller) PointerMove(x, y float64) {
	c.slot.store(&pointerSample{x: x, y: y})
}

// ClearPointer marks the pointer as gone, for example when it leaves the
// tracking container.
func (c *Controller) ClearPointer() {
	c.slot.store(&pointerSample{clear: true})
}

// Frame advances the controller by dt and returns the descriptor for the
// next frame.
//
// Frame runs a scheduled map generation, applies the latest pointer sample,
// recomputes the elastic transform against the current geometry, advances
// the transform transition and rebuilds the filter graph if its inputs
// changed. A failed generation does not fail the frame: the previous map
// or the standard pattern stays in use and Err reports the failure.
func (c *Controller) Frame(dt time.Duration) (*RenderDescriptor, error) {
	if c.closed {
		return nil, ErrClosed
	}

	c.resolvePending()
	if c.closed {
		return nil, ErrClosed
	}
	c.applyPointer()

	target, fade := c.computeTransform()
	c.transition.retarget(target)
	shown := c.transition.advance(dt)

	c.rebuildGraph()

	ox, oy := 0.0, 0.0
	if c.opts.pointerTracking {
		ox, oy = PointerOffset(c.pointer, c.geom)
	}
	backdrop := BackdropFor(c.cfg)
	c.desc = &RenderDescriptor{
		Graph:          c.graph,
		FilterEnabled:  c.opts.caps.PerPixelFilters,
		Map:            c.current,
		Transform:      shown,
		Target:         target,
		Fade:           fade,
		Backdrop:       backdrop,
		Highlights:     Highlights(ox, oy),
		Tints:          TintsFor(c.cfg.OverLight),
		CornerRadius:   c.cfg.CornerRadius,
		Padding:        c.cfg.Padding,
		PointerOffsetX: ox,
		PointerOffsetY: oy,
		Hovered:        c.pointer.Hovered,
		Active:         c.pointer.Active,
		Geometry:       c.geom,
		Config:         c.cfg,
		Style: Style{
			BackdropBlurPx:  backdrop.BlurPx,
			SaturatePercent: backdrop.SaturatePercent,
			BorderRadiusPx:  c.cfg.CornerRadius,
			Transform:       shown.CSS(),
			BoxShadow:       BoxShadowFor(c.cfg.OverLight),
			Padding:         c.cfg.Padding,
		},
	}
	return c.desc, nil
}

// Descriptor returns the descriptor built by the last Frame, or nil before
// the first frame.
func (c *Controller) Descriptor() *RenderDescriptor { return c.desc }

// Close cancels any pending generation and releases the generated map.
// Close is idempotent; after it, SetGeometry, SetConfig and Frame return
// ErrClosed.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.pending = false
	c.cancel()
	c.replaceMap(nil)
	c.graph = nil
	c.desc = nil
	return nil
}

// resolvePending generates a shader map if one is scheduled and the
// surface has a size.
func (c *Controller) resolvePending() {
	if !c.pending {
		return
	}
	w, h := c.geom.PixelSize()
	if w == 0 || h == 0 {
		return
	}
	if c.failed && c.failedSize == [2]int{w, h} {
		c.pending = false
		return
	}

	c.generations++
	m, err := c.provider.ResolveContext(c.ctx, ModeShader, w, h, c.opts.fragment, nil)
	if c.closed || c.ctx.Err() != nil {
		// Closed while generating: nothing may keep the result.
		if m != nil {
			m.Release()
		}
		return
	}
	c.pending = false
	if err != nil {
		c.failed = true
		c.failedSize = [2]int{w, h}
		c.lastGenErr = err
		attrs := []any{slog.Int("width", w), slog.Int("height", h), slog.Any("err", err)}
		var genErr *displacement.GenerationError
		if errors.As(err, &genErr) {
			attrs = append(attrs, slog.Int("x", genErr.X), slog.Int("y", genErr.Y))
		}
		c.logger().Warn("glass: displacement generation failed, keeping previous map", attrs...)
		return
	}
	c.failed = false
	c.lastGenErr = nil
	c.replaceMap(m)
	c.logger().Debug("glass: displacement map regenerated",
		slog.Int("width", w), slog.Int("height", h), slog.Uint64("generation", m.Generation))
}

// replaceMap installs m and releases the previous map if the controller
// owned it.
func (c *Controller) replaceMap(m *displacement.Map) {
	old := c.current
	c.current = m
	if old != nil && old != m && !old.Builtin() {
		old.Release()
	}
}

// applyPointer consumes the coalesced pointer sample, if any.
func (c *Controller) applyPointer() {
	s := c.slot.take()
	if s == nil {
		return
	}
	c.applied++
	if s.clear {
		c.pointer.Present = false
		return
	}
	c.pointer.GlobalX = s.x
	c.pointer.GlobalY = s.y
	c.pointer.Present = true
}

func (c *Controller) computeTransform() (elastic.Transform, float64) {
	if !c.opts.pointerTracking || c.geom.Empty() {
		return elastic.Identity(), 0
	}
	r := elastic.Compute(elastic.Input{
		Pointer:    elastic.Point{X: c.pointer.GlobalX, Y: c.pointer.GlobalY},
		HasPointer: c.pointer.Present,
		Center:     elastic.Point{X: c.geom.CenterX, Y: c.geom.CenterY},
		HalfWidth:  c.geom.Width / 2,
		HalfHeight: c.geom.Height / 2,
		Elasticity: c.cfg.Elasticity,
	})
	return r.Transform, r.Fade
}

func (c *Controller) rebuildGraph() {
	key := graphKey{
		params: filtergraph.Params{
			DisplacementScale:   c.cfg.EffectiveDisplacementScale(),
			AberrationIntensity: c.cfg.AberrationIntensity,
			Shader:              c.cfg.Mode == ModeShader,
		},
		m:    c.current,
		size: filtergraph.Size{Width: c.geom.Width, Height: c.geom.Height},
	}
	if c.graph != nil && key == c.graphKey {
		return
	}
	c.graph = filtergraph.Build(key.params, key.m, key.size)
	c.graphKey = key
	c.rebuilds++
	c.logger().Debug("glass: filter graph rebuilt",
		slog.Int("stages", len(c.graph.Stages)),
		slog.Float64("scale", key.params.DisplacementScale),
		slog.Float64("aberration", key.params.AberrationIntensity))
}

// Stats reports controller counters, mostly useful in tests and
// diagnostics.
type Stats struct {
	// PointerSamples is the number of PointerMove and ClearPointer calls.
	PointerSamples uint64

	// PointerApplied is the number of samples that reached a frame.
	PointerApplied uint64

	// Generations is the number of shader map generations attempted.
	Generations uint64

	// GraphRebuilds is the number of filter graphs built.
	GraphRebuilds uint64
}

// Stats returns the controller counters.
func (c *Controller) Stats() Stats {
	return Stats{
		PointerSamples: c.slot.received.Load(),
		PointerApplied: c.applied,
		Generations:    c.generations,
		GraphRebuilds:  c.rebuilds,
	}
}
