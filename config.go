// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glass

import (
	"fmt"
	"math"

	"github.com/gogpu/glass/displacement"
)

// Mode selects the displacement map source.
type Mode = displacement.Mode

// Mode constants.
const (
	ModeStandard  = displacement.ModeStandard
	ModePolar     = displacement.ModePolar
	ModeProminent = displacement.ModeProminent
	ModeShader    = displacement.ModeShader
)

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	return displacement.ParseMode(s)
}

// Default configuration values.
const (
	DefaultDisplacementScale   = 70.0
	DefaultBlurAmount          = 0.0625
	DefaultSaturation          = 140.0
	DefaultAberrationIntensity = 2.0
	DefaultElasticity          = 0.15
	DefaultCornerRadius        = 999.0
	DefaultPadding             = "24px 32px"

	// PrimitiveDisplacementScale is the default for a bare glass container
	// without the elastic wrapper.
	PrimitiveDisplacementScale = 25.0
)

// EffectConfig holds the effect parameters of one glass surface. It is a
// value type; a Controller keeps its own copy.
type EffectConfig struct {
	// DisplacementScale is the refraction strength in pixels.
	DisplacementScale float64

	// BlurAmount adds BlurAmount*32 px to the backdrop blur.
	BlurAmount float64

	// Saturation is the backdrop saturation in percent.
	Saturation float64

	// AberrationIntensity controls chromatic separation at the edge.
	AberrationIntensity float64

	// Elasticity scales how strongly the surface follows the pointer.
	Elasticity float64

	// CornerRadius is the border radius in pixels.
	CornerRadius float64

	// OverLight darkens the surface for use on light backgrounds.
	OverLight bool

	// Mode selects the displacement map.
	Mode Mode

	// Padding is passed through to the descriptor as a CSS padding value.
	Padding string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() EffectConfig {
	return EffectConfig{
		DisplacementScale:   DefaultDisplacementScale,
		BlurAmount:          DefaultBlurAmount,
		Saturation:          DefaultSaturation,
		AberrationIntensity: DefaultAberrationIntensity,
		Elasticity:          DefaultElasticity,
		CornerRadius:        DefaultCornerRadius,
		Mode:                ModeStandard,
		Padding:             DefaultPadding,
	}
}

// PrimitiveConfig returns the defaults of a bare glass container.
func PrimitiveConfig() EffectConfig {
	c := DefaultConfig()
	c.DisplacementScale = PrimitiveDisplacementScale
	return c
}

// Validate reports whether the configuration is usable. The returned error
// wraps ErrInvalidConfig or ErrUnsupportedMode.
func (c EffectConfig) Validate() error {
	fields := [...]struct {
		name        string
		v           float64
		nonNegative bool
	}{
		{"displacementScale", c.DisplacementScale, false},
		{"blurAmount", c.BlurAmount, true},
		{"saturation", c.Saturation, true},
		{"aberrationIntensity", c.AberrationIntensity, true},
		{"elasticity", c.Elasticity, true},
		{"cornerRadius", c.CornerRadius, true},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidConfig, f.name, f.v)
		}
		if f.nonNegative && f.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, f.name, f.v)
		}
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedMode, c.Mode)
	}
	return nil
}

// EffectiveDisplacementScale is the scale fed to the filter graph: half the
// configured scale over light backgrounds.
func (c EffectConfig) EffectiveDisplacementScale() float64 {
	if c.OverLight {
		return c.DisplacementScale * 0.5
	}
	return c.DisplacementScale
}
