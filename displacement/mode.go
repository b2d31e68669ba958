// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package displacement

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Mode selects where a glass surface takes its displacement field from.
type Mode uint8

// Mode constants.
const (
	// ModeStandard uses the built-in rounded edge pattern.
	ModeStandard Mode = iota

	// ModePolar uses the built-in radial pattern.
	ModePolar

	// ModeProminent uses the built-in pattern with a wider, stronger edge.
	ModeProminent

	// ModeShader generates a field from a fragment function at the
	// surface's own size.
	ModeShader
)

// Errors returned by the package.
var (
	// ErrUnsupportedMode is returned for a mode outside the known set.
	ErrUnsupportedMode = errors.New("displacement: unsupported mode")

	// ErrInvalidSize is returned when a generated map would be empty.
	ErrInvalidSize = errors.New("displacement: invalid map size")

	// ErrMissingFragment is returned when shader mode has no fragment.
	ErrMissingFragment = errors.New("displacement: shader mode requires a fragment function")

	// ErrReleased is returned when a released map is used.
	ErrReleased = errors.New("displacement: map has been released")
)

var modeNames = [...]string{
	ModeStandard:  "standard",
	ModePolar:     "polar",
	ModeProminent: "prominent",
	ModeShader:    "shader",
}

// String returns the lowercase mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return int(m) < len(modeNames)
}

// Builtin reports whether m selects a shared built-in pattern.
func (m Mode) Builtin() bool {
	return m == ModeStandard || m == ModePolar || m == ModeProminent
}

// ParseMode converts a mode name to a Mode. Matching ignores case and
// surrounding space.
func ParseMode(s string) (Mode, error) {
	folded := cases.Fold().String(strings.TrimSpace(s))
	for i, name := range modeNames {
		if folded == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
