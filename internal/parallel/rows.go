// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package parallel

// MinBandRows is the smallest band Rows hands to a worker. Smaller images
// run on the calling goroutine.
const MinBandRows = 16

// Rows calls fn over the rows [0, height) in disjoint bands spread across
// the pool, and returns when every band is done. A nil pool runs fn once
// over all rows on the calling goroutine.
//
// Rows has the shape of filter.RowRunner, so p.Rows can be passed where a
// runner is expected.
func (p *WorkerPool) Rows(height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	if p == nil || height < 2*MinBandRows {
		fn(0, height)
		return
	}

	bands := min(p.workers*2, height/MinBandRows)
	size := (height + bands - 1) / bands
	work := make([]func(), 0, bands)
	for y0 := 0; y0 < height; y0 += size {
		y1 := min(y0+size, height)
		work = append(work, func() { fn(y0, y1) })
	}
	p.ExecuteAll(work)
}
