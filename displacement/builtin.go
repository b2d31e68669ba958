// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package displacement

import (
	"context"
	"sync"
)

// BuiltinSize is the edge length of the built-in pattern rasters.
const BuiltinSize = 256

type builtinEntry struct {
	once     sync.Once
	pattern  Pattern
	fragment Fragment
	m        *Map
}

var builtins = [...]*builtinEntry{
	ModeStandard:  {pattern: PatternStandard, fragment: standardPattern},
	ModePolar:     {pattern: PatternPolar, fragment: polarPattern},
	ModeProminent: {pattern: PatternProminent, fragment: prominentPattern},
}

// Builtin returns the shared map for a built-in mode. It panics if mode is
// not a built-in mode; use Provider.Resolve for checked access.
//
// The three patterns are computed on first use and shared by every caller
// for the lifetime of the process.
func Builtin(mode Mode) *Map {
	if !mode.Builtin() {
		panic("displacement: not a built-in mode: " + mode.String())
	}
	e := builtins[mode]
	e.once.Do(func() {
		g, err := NewGenerator(BuiltinSize, BuiltinSize, e.fragment)
		if err != nil {
			panic("displacement: " + err.Error())
		}
		defer g.Destroy()

		img, err := g.Generate(context.Background(), nil)
		if err != nil {
			panic("displacement: building " + mode.String() + " pattern: " + err.Error())
		}
		e.m = &Map{
			Width:   BuiltinSize,
			Height:  BuiltinSize,
			Source:  SourceBuiltin,
			Pattern: e.pattern,
			img:     img,
		}
	})
	return e.m
}

// Fallback returns the standard built-in map, used while a generated map
// is unavailable.
func Fallback() *Map {
	return Builtin(ModeStandard)
}
