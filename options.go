// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glass

import (
	"log/slog"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/gogpu/glass/displacement"
)

// Default transition of the elastic transform, matching a CSS
// "all ease-out 0.2s" transition.
const DefaultTransitionDuration = 200 * time.Millisecond

// Capabilities describes what the rendering substrate supports. It is
// supplied by the host; the controller never detects it itself.
type Capabilities struct {
	// PerPixelFilters reports whether the substrate can apply the filter
	// graph. Without it only the backdrop blur and saturation apply.
	PerPixelFilters bool
}

// ControllerOption configures a Controller during creation.
//
// Example:
//
//	c, err := glass.NewController(cfg,
//		glass.WithCapabilities(glass.Capabilities{PerPixelFilters: true}),
//		glass.WithLogger(slog.Default()),
//	)
type ControllerOption func(*controllerOptions)

// controllerOptions holds optional configuration for Controller creation.
type controllerOptions struct {
	caps            Capabilities
	fragment        displacement.Fragment
	provider        *displacement.Provider
	logger          *slog.Logger
	transition      time.Duration
	easing          ease.TweenFunc
	pointerTracking bool
}

// defaultControllerOptions returns the default controller options.
func defaultControllerOptions() controllerOptions {
	return controllerOptions{
		caps:            Capabilities{PerPixelFilters: true},
		fragment:        displacement.LiquidGlass,
		transition:      DefaultTransitionDuration,
		easing:          ease.OutQuad,
		pointerTracking: true,
	}
}

// WithCapabilities sets the substrate capabilities. The default assumes
// per-pixel filters are available.
func WithCapabilities(caps Capabilities) ControllerOption {
	return func(o *controllerOptions) {
		o.caps = caps
	}
}

// WithFragment sets the fragment used in shader mode. The default is
// displacement.LiquidGlass. A nil fragment makes shader-mode generation
// fail and the controller falls back to the standard pattern.
func WithFragment(f displacement.Fragment) ControllerOption {
	return func(o *controllerOptions) {
		o.fragment = f
	}
}

// WithProvider sets the displacement provider. Controllers share the
// built-in patterns regardless of provider.
func WithProvider(p *displacement.Provider) ControllerOption {
	return func(o *controllerOptions) {
		o.provider = p
	}
}

// WithLogger sets the controller's logger. Without it the package logger
// (see SetLogger) is used.
func WithLogger(l *slog.Logger) ControllerOption {
	return func(o *controllerOptions) {
		o.logger = l
	}
}

// WithTransition sets how the displayed transform moves toward a new
// target. A zero duration or nil easing disables the transition.
func WithTransition(d time.Duration, easing ease.TweenFunc) ControllerOption {
	return func(o *controllerOptions) {
		o.transition = d
		o.easing = easing
	}
}

// WithPointerTracking enables or disables pointer tracking. With tracking
// disabled the pointer is treated as absent and every transform is the
// identity; hover and active flags still update.
func WithPointerTracking(enabled bool) ControllerOption {
	return func(o *controllerOptions) {
		o.pointerTracking = enabled
	}
}
