package mlt

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// TileCache manages decoded tiles with LRU eviction policy.
//
// The cache stores fully-decoded tiles in memory, keyed by a caller-supplied
// string (typically "z/x/y"), and evicts least-recently-used tiles when the
// memory limit is exceeded. This enables lazy decoding of tiles on demand
// while keeping frequently accessed tiles readily available.
//
// Memory estimation is approximate, based on feature and vertex counts.
//
// Example:
//
//	cache := mlt.NewTileCache(256 * 1024 * 1024) // 256MB limit
//
//	// Get tile (decodes on cache miss)
//	tile, err := cache.Get("14/8711/5677", func() (*mlt.Tile, error) {
//	    return mlt.Decode(fetchTile(14, 8711, 5677))
//	})
type TileCache struct {
	maxMemory  int64 // Maximum memory in bytes
	usedMemory int64 // Current memory usage estimate
	tiles      map[string]*cacheEntry
	lru        *list.List // LRU list (most recent at front)
	hits       int
	misses     int
	mu         sync.RWMutex
}

// cacheEntry tracks a cached tile and its metadata
type cacheEntry struct {
	key          string
	tile         *Tile
	memorySize   int64
	element      *list.Element // Position in LRU list
	lastAccessed time.Time
	accessCount  int
}

// NewTileCache creates a new cache with the specified memory limit in bytes.
//
// The memory limit is enforced approximately - actual memory usage may
// temporarily exceed the limit during decoding. Set to 0 for unlimited
// cache size.
//
// Example:
//
//	cache := mlt.NewTileCache(128 * 1024 * 1024) // 128MB
func NewTileCache(maxMemoryBytes int64) *TileCache {
	return &TileCache{
		maxMemory: maxMemoryBytes,
		tiles:     make(map[string]*cacheEntry),
		lru:       list.New(),
	}
}

// Get retrieves a tile from cache or decodes it using the provided loader
// function.
//
// If the tile is cached, it's returned immediately and moved to the front of
// the LRU list. If not cached, the loader function is called, and its result
// is cached for future access.
//
// The loader is only called on cache miss. If adding the tile would exceed
// the memory limit, least-recently-used tiles are evicted until sufficient
// space is available.
//
// Example:
//
//	tile, err := cache.Get("14/8711/5677", func() (*mlt.Tile, error) {
//	    return mlt.Decode(buf)
//	})
func (c *TileCache) Get(key string, loader func() (*Tile, error)) (*Tile, error) {
	// Fast path: check cache with read lock
	c.mu.RLock()
	if entry, ok := c.tiles[key]; ok {
		c.mu.RUnlock()

		// Update access metadata with write lock
		c.mu.Lock()
		c.hits++
		entry.lastAccessed = time.Now()
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		tile := entry.tile
		c.mu.Unlock()

		return tile, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()

	// Cache miss - decode tile
	tile, err := loader()
	if err != nil {
		return nil, fmt.Errorf("load tile: %w", err)
	}

	// Add to cache; an oversized tile is returned without caching
	if err := c.Add(key, tile); err != nil {
		return tile, nil
	}

	return tile, nil
}

// Add adds a tile to the cache.
//
// If the cache is at capacity, least-recently-used tiles are evicted to make
// room. Returns an error if the tile cannot be cached (e.g., tile is larger
// than max memory).
func (c *TileCache) Add(key string, tile *Tile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Check if already cached
	if entry, ok := c.tiles[key]; ok {
		c.usedMemory -= entry.memorySize
		entry.tile = tile
		entry.memorySize = estimateTileMemory(tile)
		c.usedMemory += entry.memorySize
		entry.lastAccessed = time.Now()
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		return nil
	}

	memSize := estimateTileMemory(tile)

	// If tile is larger than max memory, don't cache it
	if c.maxMemory > 0 && memSize > c.maxMemory {
		return fmt.Errorf("tile too large for cache (%d bytes > %d bytes max)",
			memSize, c.maxMemory)
	}

	// Evict until we have space
	if c.maxMemory > 0 {
		for c.usedMemory+memSize > c.maxMemory && c.lru.Len() > 0 {
			c.evictLRU()
		}
	}

	entry := &cacheEntry{
		key:          key,
		tile:         tile,
		memorySize:   memSize,
		lastAccessed: time.Now(),
		accessCount:  1,
	}
	entry.element = c.lru.PushFront(entry)
	c.tiles[key] = entry
	c.usedMemory += memSize

	return nil
}

// evictLRU removes the least recently used tile from cache.
// Must be called with c.mu locked.
func (c *TileCache) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}

	entry := elem.Value.(*cacheEntry)
	c.lru.Remove(elem)
	delete(c.tiles, entry.key)
	c.usedMemory -= entry.memorySize
}

// Remove explicitly removes a tile from the cache.
func (c *TileCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.tiles[key]; ok {
		c.lru.Remove(entry.element)
		delete(c.tiles, key)
		c.usedMemory -= entry.memorySize
	}
}

// Clear removes all tiles from the cache. Hit/miss counters are kept.
func (c *TileCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tiles = make(map[string]*cacheEntry)
	c.lru.Init()
	c.usedMemory = 0
}

// Stats returns cache statistics.
func (c *TileCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CacheStats{
		TileCount:  len(c.tiles),
		UsedMemory: c.usedMemory,
		MaxMemory:  c.maxMemory,
		Hits:       c.hits,
		Misses:     c.misses,
	}
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	TileCount  int   // Number of tiles currently cached
	UsedMemory int64 // Estimated memory usage in bytes
	MaxMemory  int64 // Maximum memory limit in bytes
	Hits       int   // Number of Get calls served from cache
	Misses     int   // Number of Get calls that invoked the loader
}

// HitRate returns the cache hit rate (0.0 to 1.0).
//
// This indicates what fraction of Get calls were served from cache vs
// decoded by the loader.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// estimateTileMemory estimates memory usage for a decoded tile.
//
// This is approximate and based on:
//   - Base overhead: ~1KB per tile plus ~256 bytes per layer
//   - Feature overhead: ~128 bytes per feature
//   - Vertices: 8 bytes per coordinate
//   - Strings: payload length per string property
//
// Actual memory usage varies with property counts and allocator overhead.
func estimateTileMemory(tile *Tile) int64 {
	if tile == nil {
		return 0
	}

	size := int64(1024)
	for _, layer := range tile.Layers() {
		size += 256
		features := layer.Features()
		for i := range features {
			feature := &features[i]
			size += 128
			size += 8 * int64(geometryVertexCount(feature.Geometry()))
			for _, p := range feature.Properties() {
				size += int64(len(p.Key))
				if p.Value.Type() == ValueTypeString {
					size += int64(len(p.Value.Str()))
				} else {
					size += 16
				}
			}
		}
	}
	return size
}

// geometryVertexCount counts the vertices a geometry holds.
func geometryVertexCount(g Geometry) int {
	switch g := g.(type) {
	case Point:
		return 1
	case LineString:
		return len(g.Vertices)
	case MultiPoint:
		return len(g.Points)
	case Polygon:
		n := 0
		for _, ring := range g.Rings {
			n += len(ring)
		}
		return n
	case MultiLineString:
		n := 0
		for _, line := range g.Lines {
			n += len(line)
		}
		return n
	case MultiPolygon:
		n := 0
		for _, poly := range g.Polygons {
			for _, ring := range poly {
				n += len(ring)
			}
		}
		return n
	default:
		return 0
	}
}
