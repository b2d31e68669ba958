// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"math"
	"testing"

	"github.com/gogpu/glass"
	"github.com/gogpu/glass/elastic"
)

func TestPlace(t *testing.T) {
	geom := glass.GeometryFromRect(10, 20, 100, 50)
	tests := []struct {
		name       string
		transform  elastic.Transform
		radius     float64
		wantBox    image.Rectangle
		wantRadius float64
	}{
		{
			name:       "identity pill",
			transform:  elastic.Identity(),
			radius:     999,
			wantBox:    image.Rect(10, 20, 110, 70),
			wantRadius: 25,
		},
		{
			name:       "scaled and translated",
			transform:  elastic.Transform{ScaleX: 1.1, ScaleY: 0.9, TranslateX: 5},
			radius:     20,
			wantBox:    image.Rect(10, 23, 120, 68),
			wantRadius: 18,
		},
		{
			name:       "square corners",
			transform:  elastic.Identity(),
			radius:     0,
			wantBox:    image.Rect(10, 20, 110, 70),
			wantRadius: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Place(&glass.RenderDescriptor{Geometry: geom, Transform: tt.transform, CornerRadius: tt.radius})
			if p.Box != tt.wantBox {
				t.Errorf("Box = %v, want %v", p.Box, tt.wantBox)
			}
			if math.Abs(p.Radius-tt.wantRadius) > 1e-9 {
				t.Errorf("Radius = %v, want %v", p.Radius, tt.wantRadius)
			}
		})
	}
}

func TestPlaceEmpty(t *testing.T) {
	tests := []struct {
		name string
		d    glass.RenderDescriptor
	}{
		{"zero geometry", glass.RenderDescriptor{Transform: elastic.Identity()}},
		{"zero scale", glass.RenderDescriptor{Geometry: glass.GeometryFromRect(0, 0, 10, 10)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p := Place(&tt.d); !p.Box.Empty() {
				t.Errorf("Box = %v, want empty", p.Box)
			}
			if r := Extent(&tt.d); !r.Empty() {
				t.Errorf("Extent = %v, want empty", r)
			}
		})
	}
}

func TestExtentCoversShadow(t *testing.T) {
	d := &glass.RenderDescriptor{
		Geometry:  glass.GeometryFromRect(100, 100, 40, 20),
		Transform: elastic.Identity(),
		Style:     glass.Style{BoxShadow: glass.BoxShadowFor(false)},
	}
	box := Place(d).Box
	ext := Extent(d)
	if !box.In(ext) {
		t.Fatalf("Extent %v does not contain box %v", ext, box)
	}
	// 0px 12px 40px: sigma 20, reach 3 sigma plus the offset.
	if got, want := box.Min.X-ext.Min.X, 72; got != want {
		t.Errorf("shadow margin = %d, want %d", got, want)
	}
}
