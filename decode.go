// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glass

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Config keys accepted by DecodeConfig.
const (
	keyDisplacementScale   = "displacementScale"
	keyBlurAmount          = "blurAmount"
	keySaturation          = "saturation"
	keyAberrationIntensity = "aberrationIntensity"
	keyElasticity          = "elasticity"
	keyCornerRadius        = "cornerRadius"
	keyOverLight           = "overLight"
	keyMode                = "mode"
	keyPadding             = "padding"
	keyPreset              = "preset"
)

// configJSON is the wire form of EffectConfig.
type configJSON struct {
	DisplacementScale   float64 `json:"displacementScale"`
	BlurAmount          float64 `json:"blurAmount"`
	Saturation          float64 `json:"saturation"`
	AberrationIntensity float64 `json:"aberrationIntensity"`
	Elasticity          float64 `json:"elasticity"`
	CornerRadius        float64 `json:"cornerRadius"`
	OverLight           bool    `json:"overLight"`
	Mode                Mode    `json:"mode"`
	Padding             string  `json:"padding"`
}

// DecodeConfig reads a JSON object of effect options.
//
// Missing keys keep their defaults. If a "preset" key is present the preset
// is applied first and explicit keys override it. Keys outside the known
// set are rejected with ErrUnknownKey rather than ignored. The result is
// validated.
func DecodeConfig(r io.Reader) (EffectConfig, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return EffectConfig{}, fmt.Errorf("glass: decoding config: %w", err)
	}

	var unknown []string
	for k := range raw {
		if !knownKey(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return EffectConfig{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(unknown, ", "))
	}

	cfg := DefaultConfig()
	if msg, ok := raw[keyPreset]; ok {
		var name string
		if err := json.Unmarshal(msg, &name); err != nil {
			return EffectConfig{}, fmt.Errorf("glass: config key %q: %w", keyPreset, err)
		}
		p, err := LookupPreset(name)
		if err != nil {
			return EffectConfig{}, err
		}
		cfg = cfg.With(p)
	}

	targets := map[string]any{
		keyDisplacementScale:   &cfg.DisplacementScale,
		keyBlurAmount:          &cfg.BlurAmount,
		keySaturation:          &cfg.Saturation,
		keyAberrationIntensity: &cfg.AberrationIntensity,
		keyElasticity:          &cfg.Elasticity,
		keyCornerRadius:        &cfg.CornerRadius,
		keyOverLight:           &cfg.OverLight,
		keyMode:                &cfg.Mode,
		keyPadding:             &cfg.Padding,
	}
	for key, dst := range targets {
		msg, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(msg, dst); err != nil {
			return EffectConfig{}, fmt.Errorf("glass: config key %q: %w", key, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return EffectConfig{}, err
	}
	return cfg, nil
}

// EncodeConfig writes c as an indented JSON object that DecodeConfig
// accepts.
func EncodeConfig(w io.Writer, c EffectConfig) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(configJSON(c))
}

func knownKey(k string) bool {
	switch k {
	case keyDisplacementScale, keyBlurAmount, keySaturation, keyAberrationIntensity,
		keyElasticity, keyCornerRadius, keyOverLight, keyMode, keyPadding, keyPreset:
		return true
	}
	return false
}
