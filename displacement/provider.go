// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package displacement

import (
	"context"
	"fmt"
	"log/slog"
)

// Provider resolves displacement maps for a mode and surface size.
//
// Built-in modes resolve to the shared patterns regardless of size. Shader
// mode generates a new map for every call; the caller owns it and must
// Release it when it is replaced.
type Provider struct {
	logger *slog.Logger
}

// NewProvider creates a provider. A nil logger disables logging.
func NewProvider(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{logger: logger}
}

// Resolve returns the map for mode at width×height. fragment is required
// in shader mode and ignored otherwise.
func (p *Provider) Resolve(mode Mode, width, height int, fragment Fragment) (*Map, error) {
	return p.ResolveContext(context.Background(), mode, width, height, fragment, nil)
}

// ResolveContext is like Resolve but allows a shader-mode generation to be
// cancelled, and forwards an optional normalized pointer to the fragment.
func (p *Provider) ResolveContext(ctx context.Context, mode Mode, width, height int, fragment Fragment, pointer *Vec2) (*Map, error) {
	switch mode {
	case ModeStandard, ModePolar, ModeProminent:
		return Builtin(mode), nil
	case ModeShader:
		return p.generate(ctx, width, height, fragment, pointer)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, mode)
	}
}

func (p *Provider) generate(ctx context.Context, width, height int, fragment Fragment, pointer *Vec2) (*Map, error) {
	g, err := NewGenerator(width, height, fragment)
	if err != nil {
		return nil, err
	}
	defer g.Destroy()

	img, err := g.Generate(ctx, pointer)
	if err != nil {
		p.logger.Warn("displacement: generation failed",
			slog.Int("width", width), slog.Int("height", height), slog.Any("err", err))
		return nil, err
	}

	m := &Map{
		Width:      width,
		Height:     height,
		Source:     SourceGenerated,
		Generation: generationCounter.Add(1),
		img:        img,
	}
	p.logger.Debug("displacement: generated map",
		slog.Int("width", width), slog.Int("height", height), slog.Uint64("generation", m.Generation))
	return m, nil
}
