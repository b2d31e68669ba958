// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glass

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/glass/displacement"
	"github.com/gogpu/glass/elastic"
)

const frame = 16 * time.Millisecond

func newTestController(t *testing.T, cfg EffectConfig, opts ...ControllerOption) *Controller {
	t.Helper()
	c, err := NewController(cfg, opts...)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func mustFrame(t *testing.T, c *Controller, dt time.Duration) *RenderDescriptor {
	t.Helper()
	d, err := c.Frame(dt)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	return d
}

func shaderConfig() EffectConfig {
	c := DefaultConfig()
	c.Mode = ModeShader
	return c
}

func panickingFragment(displacement.Vec2, displacement.Vec2, bool) displacement.Vec2 {
	panic("boom")
}

func TestNewControllerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Saturation = -10
	if _, err := NewController(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewController() error = %v, want ErrInvalidConfig", err)
	}
	cfg = DefaultConfig()
	cfg.Mode = Mode(9)
	if _, err := NewController(cfg); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("NewController() error = %v, want ErrUnsupportedMode", err)
	}
}

func TestControllerBuiltinDescriptor(t *testing.T) {
	c := newTestController(t, DefaultConfig())
	if err := c.SetGeometry(GeometryFromRect(0, 0, 270, 69)); err != nil {
		t.Fatal(err)
	}
	d := mustFrame(t, c, frame)

	if d.Map != displacement.Builtin(ModeStandard) {
		t.Error("standard mode should use the shared built-in map")
	}
	if d.Graph == nil || d.Graph.Map != d.Map {
		t.Fatal("graph must reference the descriptor's map")
	}
	if err := d.Graph.Validate(); err != nil {
		t.Errorf("graph invalid: %v", err)
	}
	if !d.FilterEnabled {
		t.Error("FilterEnabled should default to true")
	}
	if d.Style.BackdropFilter() != "blur(6px) saturate(140%)" {
		t.Errorf("BackdropFilter() = %q", d.Style.BackdropFilter())
	}
	if d.Style.BorderRadiusPx != 999 || d.Padding != "24px 32px" {
		t.Errorf("style = %+v", d.Style)
	}
	if d.Style.Transform != "translate(calc(-50% + 0px), calc(-50% + 0px)) scale(1)" {
		t.Errorf("Transform = %q", d.Style.Transform)
	}
	if len(d.Tints) != 0 {
		t.Errorf("Tints = %v, want none", d.Tints)
	}
	if c.Descriptor() != d {
		t.Error("Descriptor() should return the last frame's descriptor")
	}
}

func TestControllerWithoutFilterSupport(t *testing.T) {
	c := newTestController(t, DefaultConfig(), WithCapabilities(Capabilities{}))
	_ = c.SetGeometry(GeometryFromRect(0, 0, 100, 40))
	d := mustFrame(t, c, frame)
	if d.FilterEnabled {
		t.Error("FilterEnabled = true without per-pixel filter support")
	}
	if d.Graph == nil {
		t.Error("graph should still be built")
	}
	if d.Backdrop.BlurPx != 6 {
		t.Errorf("backdrop blur = %v, want 6", d.Backdrop.BlurPx)
	}
}

func TestControllerOverLight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OverLight = true
	c := newTestController(t, cfg)
	_ = c.SetGeometry(GeometryFromRect(0, 0, 100, 40))
	d := mustFrame(t, c, frame)

	if got := d.Graph.Params.DisplacementScale; got != 35 {
		t.Errorf("graph displacement scale = %v, want 35", got)
	}
	if d.Backdrop.BlurPx != 14 {
		t.Errorf("backdrop blur = %v, want 14", d.Backdrop.BlurPx)
	}
	if d.Style.BoxShadow != BoxShadowFor(true) {
		t.Errorf("BoxShadow = %+v", d.Style.BoxShadow)
	}
	if len(d.Tints) != 2 {
		t.Errorf("len(Tints) = %d, want 2", len(d.Tints))
	}
}

func TestControllerPointerCoalescing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Elasticity = 0.35
	c := newTestController(t, cfg, WithTransition(0, nil))
	g := GeometryFromRect(0, 0, 270, 69)
	_ = c.SetGeometry(g)

	c.PointerMove(10, 10)
	c.PointerMove(50, 20)
	c.PointerMove(g.CenterX+300, g.CenterY)
	d := mustFrame(t, c, frame)

	st := c.Stats()
	if st.PointerSamples != 3 || st.PointerApplied != 1 {
		t.Errorf("Stats() = %+v, want 3 samples and 1 applied", st)
	}
	if p := c.Pointer(); !p.Present || p.GlobalX != g.CenterX+300 {
		t.Errorf("Pointer() = %+v, want the latest sample", p)
	}

	want := elastic.Compute(elastic.Input{
		Pointer:    elastic.Point{X: g.CenterX + 300, Y: g.CenterY},
		HasPointer: true,
		Center:     elastic.Point{X: g.CenterX, Y: g.CenterY},
		HalfWidth:  135,
		HalfHeight: 34.5,
		Elasticity: 0.35,
	})
	if d.Target != want.Transform || d.Fade != want.Fade {
		t.Errorf("Target = %+v (fade %v), want %+v (fade %v)", d.Target, d.Fade, want.Transform, want.Fade)
	}
	if d.Transform != d.Target {
		t.Error("without a transition the displayed transform should equal the target")
	}
	if !(d.Target.ScaleX > d.Target.ScaleY) {
		t.Errorf("ScaleX = %v, ScaleY = %v; horizontal stretch should dominate", d.Target.ScaleX, d.Target.ScaleY)
	}

	// No new sample: the next frame reuses the pointer without applying.
	mustFrame(t, c, frame)
	if got := c.Stats().PointerApplied; got != 1 {
		t.Errorf("PointerApplied = %d after an idle frame, want 1", got)
	}
}

func TestControllerPointerMoveConcurrent(t *testing.T) {
	c := newTestController(t, DefaultConfig())
	_ = c.SetGeometry(GeometryFromRect(0, 0, 100, 100))

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				c.PointerMove(float64(i*100+j), 0)
			}
		}()
	}
	wg.Wait()
	mustFrame(t, c, frame)
	st := c.Stats()
	if st.PointerSamples != 400 || st.PointerApplied != 1 {
		t.Errorf("Stats() = %+v, want 400 samples and 1 applied", st)
	}
}

func TestControllerGeometryChangeRecomputes(t *testing.T) {
	c := newTestController(t, DefaultConfig(), WithTransition(0, nil))
	_ = c.SetGeometry(GeometryFromRect(0, 0, 100, 100))
	c.PointerMove(170, 50)
	d := mustFrame(t, c, frame)
	if d.Target.IsIdentity() {
		t.Fatal("pointer near the surface should deform it")
	}

	// Moving the surface far away from the pointer must use the new
	// geometry on the next frame.
	_ = c.SetGeometry(GeometryFromRect(1000, 1000, 100, 100))
	d = mustFrame(t, c, frame)
	if !d.Target.IsIdentity() {
		t.Errorf("Target = %+v after moving away, want identity", d.Target)
	}
}

func TestControllerClearPointer(t *testing.T) {
	c := newTestController(t, DefaultConfig(), WithTransition(0, nil))
	_ = c.SetGeometry(GeometryFromRect(0, 0, 100, 100))
	c.PointerMove(160, 50)
	if d := mustFrame(t, c, frame); d.Target.IsIdentity() {
		t.Fatal("expected a deformed target")
	}
	c.ClearPointer()
	d := mustFrame(t, c, frame)
	if !d.Target.IsIdentity() || c.Pointer().Present {
		t.Errorf("after ClearPointer Target = %+v, Present = %v", d.Target, c.Pointer().Present)
	}
	if d.PointerOffsetX != 0 || d.PointerOffsetY != 0 {
		t.Errorf("pointer offset = (%v, %v), want 0", d.PointerOffsetX, d.PointerOffsetY)
	}
}

func TestControllerPointerTrackingDisabled(t *testing.T) {
	c := newTestController(t, DefaultConfig(), WithPointerTracking(false))
	_ = c.SetGeometry(GeometryFromRect(0, 0, 100, 100))
	c.PointerEnter()
	c.PointerDown()
	c.PointerMove(150, 50)
	d := mustFrame(t, c, frame)
	if !d.Target.IsIdentity() || !d.Transform.IsIdentity() {
		t.Errorf("transform = %+v, want identity without pointer tracking", d.Transform)
	}
	if !d.Hovered || !d.Active {
		t.Error("hover and active flags should still update")
	}
	if d.Highlights != Highlights(0, 0) {
		t.Error("highlights should be centered without pointer tracking")
	}
}

func TestControllerPresentationFlags(t *testing.T) {
	c := newTestController(t, DefaultConfig())
	c.PointerEnter()
	c.PointerDown()
	d := mustFrame(t, c, frame)
	if !d.Hovered || !d.Active {
		t.Errorf("Hovered = %v, Active = %v; want both true", d.Hovered, d.Active)
	}
	c.PointerUp()
	c.PointerLeave()
	d = mustFrame(t, c, frame)
	if d.Hovered || d.Active {
		t.Errorf("Hovered = %v, Active = %v; want both false", d.Hovered, d.Active)
	}
	if !d.Target.IsIdentity() {
		t.Error("flags must not affect the transform")
	}
}

func TestControllerTransition(t *testing.T) {
	c := newTestController(t, DefaultConfig())
	_ = c.SetGeometry(GeometryFromRect(0, 0, 100, 100))
	c.PointerMove(160, 50)

	d := mustFrame(t, c, 0)
	if d.Target.IsIdentity() {
		t.Fatal("expected a deformed target")
	}
	if !d.Transform.IsIdentity() || d.Settled() {
		t.Errorf("at t=0 the displayed transform should still be identity, got %+v", d.Transform)
	}

	d = mustFrame(t, c, 100*time.Millisecond)
	if d.Settled() {
		t.Error("transition should not be finished halfway")
	}
	if d.Transform.TranslateX <= 0 || d.Transform.TranslateX >= d.Target.TranslateX {
		t.Errorf("halfway TranslateX = %v, want between 0 and %v", d.Transform.TranslateX, d.Target.TranslateX)
	}

	d = mustFrame(t, c, 150*time.Millisecond)
	if !d.Settled() {
		t.Errorf("transition should be settled after %v, got %+v want %+v", DefaultTransitionDuration, d.Transform, d.Target)
	}
}

func TestControllerShaderGeneration(t *testing.T) {
	c := newTestController(t, shaderConfig())
	if c.Map() != displacement.Fallback() {
		t.Error("shader mode should start on the fallback map")
	}

	// Without a size nothing can be generated yet.
	d := mustFrame(t, c, frame)
	if d.Map != displacement.Fallback() || c.Stats().Generations != 0 {
		t.Error("generation must wait for a non-empty geometry")
	}

	_ = c.SetGeometry(GeometryFromRect(0, 0, 64, 32))
	d = mustFrame(t, c, frame)
	first := d.Map
	if first.Builtin() || first.Width != 64 || first.Height != 32 {
		t.Fatalf("map = %+v, want a generated 64×32 map", first)
	}
	if !d.Graph.Params.Shader || d.Graph.Map != first {
		t.Error("graph should be built for the generated map")
	}

	// Moving without resizing keeps the map.
	_ = c.SetGeometry(GeometryFromRect(10, 10, 64, 32))
	if d = mustFrame(t, c, frame); d.Map != first {
		t.Error("a move without resize must not regenerate")
	}

	_ = c.SetGeometry(GeometryFromRect(10, 10, 80, 40))
	d = mustFrame(t, c, frame)
	if d.Map == first || d.Map.Width != 80 || d.Map.Height != 40 {
		t.Errorf("map after resize = %+v, want a new 80×40 map", d.Map)
	}
	if !first.Released() {
		t.Error("the replaced map should be released")
	}
	if got := c.Stats().Generations; got != 2 {
		t.Errorf("Generations = %d, want 2", got)
	}
}

func TestControllerGenerationFailureFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := newTestController(t, shaderConfig(), WithFragment(panickingFragment), WithLogger(logger))
	_ = c.SetGeometry(GeometryFromRect(0, 0, 32, 32))

	d, err := c.Frame(frame)
	if err != nil {
		t.Fatalf("Frame() error = %v, a generation failure must not fail the frame", err)
	}
	if d.Map != displacement.Fallback() {
		t.Error("failed generation should leave the standard fallback in place")
	}
	var genErr *displacement.GenerationError
	if !errors.As(c.Err(), &genErr) {
		t.Errorf("Err() = %v, want *GenerationError", c.Err())
	}
	if !strings.Contains(buf.String(), "generation failed") {
		t.Errorf("expected a warning in the log, got:\n%s", buf.String())
	}

	mustFrame(t, c, frame)
	if got := c.Stats().Generations; got != 1 {
		t.Errorf("Generations = %d, a failed size must not be retried every frame", got)
	}

	_ = c.SetGeometry(GeometryFromRect(0, 0, 48, 32))
	mustFrame(t, c, frame)
	if got := c.Stats().Generations; got != 2 {
		t.Errorf("Generations = %d after resize, want 2", got)
	}
}

func TestControllerGenerationFailureKeepsLastValidMap(t *testing.T) {
	fail := false
	frag := func(uv, p displacement.Vec2, has bool) displacement.Vec2 {
		if fail {
			panic("unavailable")
		}
		return displacement.LiquidGlass(uv, p, has)
	}
	c := newTestController(t, shaderConfig(), WithFragment(frag))
	_ = c.SetGeometry(GeometryFromRect(0, 0, 32, 16))
	good := mustFrame(t, c, frame).Map
	if good.Builtin() {
		t.Fatal("expected a generated map")
	}

	fail = true
	_ = c.SetGeometry(GeometryFromRect(0, 0, 40, 16))
	d := mustFrame(t, c, frame)
	if d.Map != good || good.Released() {
		t.Error("failed regeneration must keep the last valid map")
	}
	if c.Err() == nil {
		t.Error("Err() = nil after a failed generation")
	}

	fail = false
	_ = c.SetGeometry(GeometryFromRect(0, 0, 48, 16))
	mustFrame(t, c, frame)
	if c.Err() != nil {
		t.Errorf("Err() = %v after a successful generation", c.Err())
	}
}

func TestControllerMissingFragment(t *testing.T) {
	c := newTestController(t, shaderConfig(), WithFragment(nil))
	_ = c.SetGeometry(GeometryFromRect(0, 0, 16, 16))
	d := mustFrame(t, c, frame)
	if d.Map != displacement.Fallback() {
		t.Error("missing fragment should fall back to the standard map")
	}
	if !errors.Is(c.Err(), displacement.ErrMissingFragment) {
		t.Errorf("Err() = %v, want ErrMissingFragment", c.Err())
	}
}

func TestControllerModeSwitchReleasesGeneratedMap(t *testing.T) {
	c := newTestController(t, shaderConfig())
	_ = c.SetGeometry(GeometryFromRect(0, 0, 32, 32))
	generated := mustFrame(t, c, frame).Map

	cfg := c.Config()
	cfg.Mode = ModePolar
	if err := c.SetConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if !generated.Released() {
		t.Error("switching to a built-in mode should release the generated map")
	}
	if d := mustFrame(t, c, frame); d.Map != displacement.Builtin(ModePolar) || d.Graph.Params.Shader {
		t.Error("descriptor should use the polar built-in map")
	}

	cfg.Mode = ModeShader
	_ = c.SetConfig(cfg)
	if d := mustFrame(t, c, frame); d.Map.Builtin() {
		t.Error("switching back to shader mode should generate a map")
	}
}

func TestControllerPendingShaderUsesShaderSign(t *testing.T) {
	c := newTestController(t, shaderConfig())
	d := mustFrame(t, c, frame)
	if d.Map != displacement.Fallback() {
		t.Error("pending shader mode should show the fallback map")
	}
	if !d.Graph.Params.Shader {
		t.Error("pending shader mode should already use the shader channel sign")
	}
}

func TestControllerSwitchToShaderDropsBuiltinMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ModePolar
	c := newTestController(t, cfg)
	if d := mustFrame(t, c, frame); d.Map != displacement.Builtin(ModePolar) {
		t.Fatal("polar mode should use the polar built-in map")
	}

	cfg.Mode = ModeShader
	if err := c.SetConfig(cfg); err != nil {
		t.Fatal(err)
	}
	d := mustFrame(t, c, frame)
	if d.Map != displacement.Fallback() {
		t.Error("pending shader mode should not keep the polar map")
	}
	if !d.Graph.Params.Shader {
		t.Error("graph should follow shader mode while generation is pending")
	}
}

func TestControllerSetConfigValidates(t *testing.T) {
	c := newTestController(t, DefaultConfig())
	bad := DefaultConfig()
	bad.Elasticity = math.NaN()
	if err := c.SetConfig(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetConfig() error = %v, want ErrInvalidConfig", err)
	}
	if c.Config() != DefaultConfig() {
		t.Error("a rejected config must not be applied")
	}
}

func TestControllerGraphRebuiltOnlyOnChange(t *testing.T) {
	c := newTestController(t, DefaultConfig())
	_ = c.SetGeometry(GeometryFromRect(0, 0, 100, 50))
	first := mustFrame(t, c, frame).Graph
	c.PointerMove(120, 25)
	second := mustFrame(t, c, frame).Graph
	if first != second || c.Stats().GraphRebuilds != 1 {
		t.Errorf("graph rebuilt without input changes, rebuilds = %d", c.Stats().GraphRebuilds)
	}

	cfg := c.Config()
	cfg.AberrationIntensity = 0
	_ = c.SetConfig(cfg)
	third := mustFrame(t, c, frame).Graph
	if third == second || c.Stats().GraphRebuilds != 2 {
		t.Error("changing the aberration should rebuild the graph")
	}

	_ = c.SetGeometry(GeometryFromRect(0, 0, 120, 50))
	mustFrame(t, c, frame)
	if got := c.Stats().GraphRebuilds; got != 3 {
		t.Errorf("GraphRebuilds = %d after resize, want 3", got)
	}
}

func TestControllerCloseDiscardsPendingGeneration(t *testing.T) {
	calls := 0
	frag := func(uv, p displacement.Vec2, has bool) displacement.Vec2 {
		calls++
		return displacement.LiquidGlass(uv, p, has)
	}
	c := newTestController(t, shaderConfig(), WithFragment(frag))
	_ = c.SetGeometry(GeometryFromRect(0, 0, 32, 32))
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Frame(frame); !errors.Is(err, ErrClosed) {
		t.Errorf("Frame() after Close = %v, want ErrClosed", err)
	}
	if calls != 0 || c.Stats().Generations != 0 {
		t.Errorf("pending generation ran after Close (%d fragment calls)", calls)
	}
}

func TestControllerCloseDuringGeneration(t *testing.T) {
	var c *Controller
	frag := func(uv, p displacement.Vec2, has bool) displacement.Vec2 {
		_ = c.Close()
		return displacement.LiquidGlass(uv, p, has)
	}
	c = newTestController(t, shaderConfig(), WithFragment(frag))
	_ = c.SetGeometry(GeometryFromRect(0, 0, 16, 16))

	if _, err := c.Frame(frame); !errors.Is(err, ErrClosed) {
		t.Errorf("Frame() = %v, want ErrClosed", err)
	}
	if c.Map() != nil {
		t.Error("a closed controller must not keep a map")
	}
}

func TestControllerCloseReleasesMap(t *testing.T) {
	c := newTestController(t, shaderConfig())
	_ = c.SetGeometry(GeometryFromRect(0, 0, 16, 16))
	m := mustFrame(t, c, frame).Map

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !m.Released() {
		t.Error("Close should release the generated map")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if err := c.SetGeometry(GeometryFromRect(0, 0, 8, 8)); !errors.Is(err, ErrClosed) {
		t.Errorf("SetGeometry() after Close = %v, want ErrClosed", err)
	}
	if err := c.SetConfig(DefaultConfig()); !errors.Is(err, ErrClosed) {
		t.Errorf("SetConfig() after Close = %v, want ErrClosed", err)
	}
	if c.Descriptor() != nil {
		t.Error("Descriptor() should be nil after Close")
	}
}
