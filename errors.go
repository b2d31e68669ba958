// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glass

import (
	"errors"

	"github.com/gogpu/glass/displacement"
)

// Sentinel errors. Returned errors wrap these; test with errors.Is.
var (
	// ErrUnsupportedMode is returned for a mode that is not one of
	// standard, polar, prominent or shader.
	ErrUnsupportedMode = displacement.ErrUnsupportedMode

	// ErrInvalidConfig is returned when an EffectConfig fails validation.
	ErrInvalidConfig = errors.New("glass: invalid config")

	// ErrUnknownKey is returned by DecodeConfig for unrecognized keys.
	ErrUnknownKey = errors.New("glass: unknown config key")

	// ErrUnknownPreset is returned for a preset name that does not exist.
	ErrUnknownPreset = errors.New("glass: unknown preset")

	// ErrClosed is returned by operations on a closed Controller.
	ErrClosed = errors.New("glass: controller closed")
)
