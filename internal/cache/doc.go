// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a generic LRU cache.
//
//	c := cache.New[string, int](100)
//	value, err := c.GetOrCreate("key", func() (int, error) { return 42, nil })
//
// An eviction callback can be attached with NewWithEvict; it runs for every
// entry that leaves the cache, whether by eviction, DeleteFunc or Clear, so
// owned resources can be released.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
// The eviction callback runs with the cache lock held and must not call
// back into the cache.
package cache
