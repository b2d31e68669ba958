// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glass

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/gogpu/glass/elastic"
)

// transition eases the displayed transform toward the computed target.
// A single tween drives the progress from 0 to 1; the transform is
// interpolated between the value shown when the target last changed and
// the target.
type transition struct {
	duration float32 // seconds
	easing   ease.TweenFunc

	from    elastic.Transform
	to      elastic.Transform
	current elastic.Transform
	tween   *gween.Tween
}

func newTransition(d time.Duration, easing ease.TweenFunc) *transition {
	id := elastic.Identity()
	return &transition{
		duration: float32(d.Seconds()),
		easing:   easing,
		from:     id,
		to:       id,
		current:  id,
	}
}

// enabled reports whether transforms are eased rather than applied
// immediately.
func (t *transition) enabled() bool {
	return t.duration > 0 && t.easing != nil
}

// retarget starts moving toward target from the current value. It is a
// no-op when target equals the current target.
func (t *transition) retarget(target elastic.Transform) {
	if target == t.to {
		return
	}
	t.to = target
	if !t.enabled() {
		t.current = target
		t.tween = nil
		return
	}
	t.from = t.current
	t.tween = gween.New(0, 1, t.duration, t.easing)
}

// advance moves the transition forward by dt and returns the displayed
// transform.
func (t *transition) advance(dt time.Duration) elastic.Transform {
	if t.tween == nil {
		return t.current
	}
	k, done := t.tween.Update(float32(dt.Seconds()))
	if done {
		t.current = t.to
		t.tween = nil
		return t.current
	}
	// Overshooting easings must not squeeze the surface past the minimum.
	cur := t.from.Lerp(t.to, float64(k))
	cur.ScaleX = math.Max(cur.ScaleX, elastic.MinScale)
	cur.ScaleY = math.Max(cur.ScaleY, elastic.MinScale)
	t.current = cur
	return t.current
}

// settled reports whether the displayed transform has reached the target.
func (t *transition) settled() bool {
	return t.tween == nil
}
