// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glass

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Preset is a named bundle of effect parameters.
type Preset struct {
	Name                string
	DisplacementScale   float64
	BlurAmount          float64
	Saturation          float64
	AberrationIntensity float64
	Elasticity          float64
	CornerRadius        float64
}

var presets = [...]Preset{
	{Name: "card", DisplacementScale: 50, BlurAmount: 0.2, Saturation: 140, AberrationIntensity: 1, Elasticity: 0.1, CornerRadius: 16},
	{Name: "button", DisplacementScale: 64, BlurAmount: 0.1, Saturation: 130, AberrationIntensity: 2, Elasticity: 0.35, CornerRadius: 12},
	{Name: "input", DisplacementScale: 30, BlurAmount: 0.15, Saturation: 120, AberrationIntensity: 1, Elasticity: 0.05, CornerRadius: 8},
	{Name: "modal", DisplacementScale: 80, BlurAmount: 0.3, Saturation: 150, AberrationIntensity: 3, Elasticity: 0.2, CornerRadius: 24},
	{Name: "subtle", DisplacementScale: 20, BlurAmount: 0.05, Saturation: 110, AberrationIntensity: 0.5, Elasticity: 0.02, CornerRadius: 6},
}

// LookupPreset returns the preset with the given name, compared with
// Unicode case folding.
func LookupPreset(name string) (Preset, error) {
	key := cases.Fold().String(strings.TrimSpace(name))
	for _, p := range presets {
		if p.Name == key {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// MustPreset is like LookupPreset but panics if the preset does not exist.
func MustPreset(name string) Preset {
	p, err := LookupPreset(name)
	if err != nil {
		panic(err)
	}
	return p
}

// PresetNames returns the preset names in declaration order.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// With returns c with the preset's parameters applied. OverLight, Mode and
// Padding are kept.
func (c EffectConfig) With(p Preset) EffectConfig {
	c.DisplacementScale = p.DisplacementScale
	c.BlurAmount = p.BlurAmount
	c.Saturation = p.Saturation
	c.AberrationIntensity = p.AberrationIntensity
	c.Elasticity = p.Elasticity
	c.CornerRadius = p.CornerRadius
	return c
}
