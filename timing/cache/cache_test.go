package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m60pair/insts"
	"github.com/sarchlab/m60pair/timing/cache"
)

var _ = Describe("Cache", func() {
	var (
		c     *cache.Cache
		image []byte
	)

	BeforeEach(func() {
		image = make([]byte, 4096)
		for i := range image {
			image[i] = byte(i)
		}
		// Small cache for testing: 256B, 4-way, 16B lines = 4 sets
		config := cache.Config{
			Size:          256,
			Associativity: 4,
			BlockSize:     16,
		}
		c = cache.New(config, cache.NewImageBacking(image))
	})

	Describe("Read operations", func() {
		It("should miss on cold cache", func() {
			result := c.Read(0x10, 2)
			Expect(result.Hit).To(BeFalse())
			Expect(result.Data).To(Equal(uint64(0x1011)))

			stats := c.Stats()
			Expect(stats.Fetches).To(Equal(uint64(1)))
			Expect(stats.Misses).To(Equal(uint64(1)))
			Expect(stats.Hits).To(Equal(uint64(0)))
		})

		It("should hit on a fetched line", func() {
			c.Read(0x20, 2)

			result := c.Read(0x2E, 2)
			Expect(result.Hit).To(BeTrue())
			Expect(result.Data).To(Equal(uint64(0x2E2F)))
			Expect(c.Stats().Lines).To(Equal(uint64(1)))
		})

		It("should read zeros past the end of the image", func() {
			result := c.Read(0x2000, 4)
			Expect(result.Data).To(BeZero())
		})
	})

	Describe("Eviction", func() {
		It("should evict the least recently used line of a full set", func() {
			// 4 sets of 16B: set 0 holds 0x000, 0x040, 0x080, 0x0C0, 0x100
			c.Read(0x000, 2)
			c.Read(0x040, 2)
			c.Read(0x080, 2)
			c.Read(0x0C0, 2)
			Expect(c.Read(0x000, 2).Hit).To(BeTrue())

			result := c.Read(0x100, 2)
			Expect(result.Hit).To(BeFalse())
			Expect(result.Evicted).To(BeTrue())
			Expect(result.EvictedAddr).To(Equal(uint64(0x040)))
			Expect(c.Stats().Evictions).To(Equal(uint64(1)))
		})
	})

	Describe("FetchInstructions", func() {
		It("should fetch each line once for straight-line code", func() {
			var program []*insts.Instruction
			for off := uint32(0); off < 48; off += 4 {
				program = append(program, &insts.Instruction{
					Offset: off,
					Words:  []uint16{0x203C, 0x0000},
				})
			}

			stats := c.FetchInstructions(program)
			Expect(stats.Lines).To(Equal(uint64(3)))
			Expect(stats.Misses).To(Equal(uint64(3)))
			Expect(stats.Hits).To(Equal(uint64(9)))
		})

		It("should split instructions that cross a line", func() {
			program := []*insts.Instruction{
				{Offset: 14, Words: []uint16{0x203C, 0x1234, 0x5678}},
			}

			stats := c.FetchInstructions(program)
			Expect(stats.Fetches).To(Equal(uint64(2)))
			Expect(stats.Lines).To(Equal(uint64(2)))
		})
	})

	It("should clear lines and statistics on reset", func() {
		c.Read(0x10, 2)
		c.Reset()
		Expect(c.Stats()).To(Equal(cache.Statistics{}))
		Expect(c.Read(0x10, 2).Hit).To(BeFalse())
	})

	It("should invalidate a line", func() {
		c.Read(0x10, 2)
		c.Invalidate(0x10)
		Expect(c.Read(0x10, 2).Hit).To(BeFalse())
	})

	Describe("Default configuration", func() {
		It("should model the MC68060 instruction cache", func() {
			config := cache.DefaultICacheConfig()
			Expect(config.Size).To(Equal(8 * 1024))
			Expect(config.Associativity).To(Equal(4))
			Expect(config.BlockSize).To(Equal(16))
			Expect(config.NumSets()).To(Equal(128))
			Expect(config.Validate()).To(Succeed())
		})

		It("should reject geometries without whole sets", func() {
			Expect(cache.Config{Size: 1000, Associativity: 4, BlockSize: 16}.Validate()).
				To(MatchError(ContainSubstring("size")))
			Expect(cache.Config{Size: 1024, Associativity: 4, BlockSize: 12}.Validate()).
				To(MatchError(ContainSubstring("block_size")))
			Expect(cache.Config{Size: 1024, Associativity: 0, BlockSize: 16}.Validate()).
				To(MatchError(ContainSubstring("associativity")))
		})
	})
})
