// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/glass/displacement"
	"github.com/gogpu/glass/internal/cache"
	"github.com/gogpu/glass/internal/filter"
)

// DefaultMapCacheSize is the number of fitted displacement rasters a
// SoftwareRenderer keeps.
const DefaultMapCacheSize = 16

type mapCacheKey struct {
	id            displacement.Key
	width, height int
}

type fittedMap struct {
	m   *displacement.Map
	img *filter.Image
}

// mapCache holds displacement maps already fitted to a surface size.
// Fitting resamples the whole raster, which is too slow to repeat for
// every frame of an animation.
type mapCache struct {
	entries *cache.Cache[mapCacheKey, fittedMap]
}

// newMapCache creates a cache of at most capacity maps. onEvict, if set,
// sees every entry that leaves the cache.
func newMapCache(capacity int, onEvict func(width, height int, m *displacement.Map)) *mapCache {
	var evict func(mapCacheKey, fittedMap)
	if onEvict != nil {
		evict = func(k mapCacheKey, v fittedMap) { onEvict(k.width, k.height, v.m) }
	}
	return &mapCache{entries: cache.NewWithEvict(capacity, evict)}
}

// fitted returns m fitted to width×height.
func (c *mapCache) fitted(m *displacement.Map, width, height int) (*filter.Image, error) {
	key := mapCacheKey{id: m.Key(), width: width, height: height}
	v, err := c.entries.GetOrCreate(key, func() (fittedMap, error) {
		img, err := displacement.FitSlice(m, width, height)
		if err != nil {
			return fittedMap{}, err
		}
		return fittedMap{m: m, img: filter.FromImage(img)}, nil
	})
	return v.img, err
}

// purge drops entries whose map has been released. It returns the number
// of entries removed.
func (c *mapCache) purge() int {
	return c.entries.DeleteFunc(func(_ mapCacheKey, v fittedMap) bool {
		return v.m.Released()
	})
}

// clear drops every entry.
func (c *mapCache) clear() {
	c.entries.Clear()
}

func (c *mapCache) stats() cache.Stats {
	return c.entries.Stats()
}
