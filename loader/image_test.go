package loader_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m60pair/loader"
)

var _ = Describe("Image Loader", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "image-loader-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	Describe("Load", func() {
		Context("with a raw binary", func() {
			var path string

			BeforeEach(func() {
				path = filepath.Join(tempDir, "test.bin")
				// moveq #1,d0 ; rts
				Expect(os.WriteFile(path, []byte{0x70, 0x01, 0x4E, 0x75}, 0o644)).To(Succeed())
			})

			It("should load the whole file", func() {
				img, err := loader.Load(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(img.Path).To(Equal(path))
				Expect(img.Size()).To(Equal(4))
				Expect(img.Data).To(Equal([]byte{0x70, 0x01, 0x4E, 0x75}))
			})
		})

		Context("with an invalid file", func() {
			It("should return error for non-existent file", func() {
				_, err := loader.Load(filepath.Join(tempDir, "missing.bin"))
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("unable to open file"))
				Expect(errors.Is(err, loader.ErrOpen)).To(BeTrue())
				Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
			})

			It("should return error for a directory", func() {
				_, err := loader.Load(tempDir)
				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, loader.ErrOpen) || errors.Is(err, loader.ErrRead) ||
					errors.Is(err, loader.ErrEmptyFile)).To(BeTrue())
			})

			It("should return error for empty file", func() {
				path := filepath.Join(tempDir, "empty.bin")
				Expect(os.WriteFile(path, nil, 0o644)).To(Succeed())

				_, err := loader.Load(path)
				Expect(err).To(MatchError(loader.ErrEmptyFile))
			})
		})
	})

	Describe("Words", func() {
		var img *loader.Image

		BeforeEach(func() {
			img = loader.FromBytes("mem", []byte{0x20, 0x3C, 0x12, 0x34, 0x56, 0x78, 0x4E})
		})

		It("should read big-endian words", func() {
			Expect(img.Words(0, 8)).To(Equal([]uint16{0x203C, 0x1234, 0x5678}))
		})

		It("should limit the number of words", func() {
			Expect(img.Words(0, 2)).To(Equal([]uint16{0x203C, 0x1234}))
		})

		It("should drop a trailing odd byte", func() {
			Expect(img.Words(6, 8)).To(BeEmpty())
		})

		It("should read words at odd offsets", func() {
			Expect(img.Words(1, 1)).To(Equal([]uint16{0x3C12}))
		})
	})
})
