// Package cache models the MC68060 instruction cache using Akita cache
// components. It reports the line footprint of a program; it does not
// affect pairing or the cycle estimate.
package cache

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"

	"github.com/sarchlab/m60pair/insts"
)

// Config holds cache configuration parameters.
type Config struct {
	// Size in bytes
	Size int `json:"size"`
	// Associativity (number of ways)
	Associativity int `json:"associativity"`
	// BlockSize in bytes (cache line size)
	BlockSize int `json:"block_size"`
}

// DefaultICacheConfig returns the MC68060 instruction cache geometry:
// 8KB, 4-way set associative, 16B lines.
func DefaultICacheConfig() Config {
	return Config{
		Size:          8 * 1024,
		Associativity: 4,
		BlockSize:     16,
	}
}

// NumSets returns the number of sets of the configured geometry.
func (c Config) NumSets() int {
	return c.Size / (c.Associativity * c.BlockSize)
}

// Validate checks that the geometry divides into whole sets of
// power-of-two lines.
func (c Config) Validate() error {
	if c.BlockSize <= 0 || c.BlockSize&(c.BlockSize-1) != 0 {
		return fmt.Errorf("block_size must be a power of two")
	}
	if c.Associativity <= 0 {
		return fmt.Errorf("associativity must be > 0")
	}
	if c.Size <= 0 || c.Size%(c.Associativity*c.BlockSize) != 0 {
		return fmt.Errorf("size must be a positive multiple of associativity * block_size")
	}
	return nil
}

// AccessResult contains the result of a cache access.
type AccessResult struct {
	// Hit indicates whether the access was a cache hit.
	Hit bool
	// Data is the fetched value, big-endian as the 68k stores it.
	Data uint64
	// Evicted is true if a valid line was replaced.
	Evicted bool
	// EvictedAddr is the address of the evicted line (if Evicted is true).
	EvictedAddr uint64
}

// Statistics holds cache performance statistics.
type Statistics struct {
	Fetches   uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
	// Lines is the number of distinct lines touched.
	Lines uint64
}

// Cache is a read-only instruction cache.
type Cache struct {
	config Config

	// Akita cache directory for tag/state management
	directory *akitacache.DirectoryImpl

	// Data storage - indexed by (setID * associativity + wayID)
	dataStore [][]byte

	stats   Statistics
	touched map[uint64]struct{}

	backing BackingStore
}

// New creates a new cache with the given configuration.
func New(config Config, backing BackingStore) *Cache {
	numSets := config.NumSets()
	totalBlocks := numSets * config.Associativity

	dataStore := make([][]byte, totalBlocks)
	for i := range dataStore {
		dataStore[i] = make([]byte, config.BlockSize)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
		dataStore: dataStore,
		touched:   make(map[uint64]struct{}),
		backing:   backing,
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns cache statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

func (c *Cache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

func (c *Cache) lineAddr(addr uint64) uint64 {
	return addr / uint64(c.config.BlockSize) * uint64(c.config.BlockSize)
}

// Read fetches size bytes at addr. The access must not cross a line.
func (c *Cache) Read(addr uint64, size int) AccessResult {
	c.stats.Fetches++

	blockAddr := c.lineAddr(addr)
	offset := addr - blockAddr
	c.touched[blockAddr] = struct{}{}
	c.stats.Lines = uint64(len(c.touched))

	block := c.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)
		return AccessResult{
			Hit:  true,
			Data: extractData(c.dataStore[c.blockIndex(block)], offset, size),
		}
	}

	c.stats.Misses++
	return c.handleMiss(blockAddr, offset, size)
}

func (c *Cache) handleMiss(blockAddr, offset uint64, size int) AccessResult {
	result := AccessResult{}

	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		return result
	}

	if victim.IsValid {
		c.stats.Evictions++
		result.Evicted = true
		result.EvictedAddr = victim.Tag
	}

	victimData := c.dataStore[c.blockIndex(victim)]
	if c.backing != nil {
		copy(victimData, c.backing.Read(blockAddr, c.config.BlockSize))
	} else {
		clear(victimData)
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false
	c.directory.Visit(victim)

	result.Data = extractData(victimData, offset, size)
	return result
}

// FetchInstructions fetches the words of every instruction in program
// order, one access per line touched, and returns the statistics.
func (c *Cache) FetchInstructions(program []*insts.Instruction) Statistics {
	for _, inst := range program {
		addr := uint64(inst.Offset)
		end := addr + uint64(inst.Size())
		for addr < end {
			next := min(c.lineAddr(addr)+uint64(c.config.BlockSize), end)
			c.Read(addr, int(next-addr))
			addr = next
		}
	}
	return c.stats
}

// Invalidate marks a cache line as invalid.
func (c *Cache) Invalidate(addr uint64) {
	block := c.directory.Lookup(0, c.lineAddr(addr))
	if block != nil && block.IsValid {
		block.IsValid = false
	}
}

// Reset invalidates all cache lines and clears the statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
	c.touched = make(map[uint64]struct{})
}

// extractData reads a big-endian value of up to eight bytes.
func extractData(data []byte, offset uint64, size int) uint64 {
	if data == nil || int(offset)+size > len(data) {
		return 0
	}

	size = min(size, 8)
	var result uint64
	for i := 0; i < size; i++ {
		result = result<<8 | uint64(data[int(offset)+i])
	}
	return result
}
