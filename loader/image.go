// Package loader provides raw binary loading for MC68060 code images.
//
// An image is a flat stream of big-endian 16-bit instruction words, as
// produced by an assembler's binary output format. There is no header,
// relocation or symbol table; the first word is at offset zero.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Load errors.
var (
	ErrOpen      = errors.New("unable to open file")
	ErrRead      = errors.New("unable to read file")
	ErrEmptyFile = errors.New("empty or invalid file")
)

// Image is a loaded binary image.
type Image struct {
	// Path is the file the image was read from.
	Path string
	// Data holds the raw bytes.
	Data []byte
}

// Load reads the whole file at path. Open, read and empty-file failures
// are all fatal to an analysis.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrOpen, path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if info.Size() <= 0 {
		return nil, ErrEmptyFile
	}

	data := make([]byte, info.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return &Image{Path: path, Data: data}, nil
}

// FromBytes wraps data already in memory.
func FromBytes(name string, data []byte) *Image {
	return &Image{Path: name, Data: data}
}

// Size returns the image size in bytes.
func (img *Image) Size() int {
	return len(img.Data)
}

// Words returns up to limit big-endian words starting at offset. A trailing
// odd byte is never returned as part of a word.
func (img *Image) Words(offset, limit int) []uint16 {
	var words []uint16
	for i := 0; i < limit && offset+2*i+1 < len(img.Data); i++ {
		p := offset + 2*i
		words = append(words, uint16(img.Data[p])<<8|uint16(img.Data[p+1]))
	}
	return words
}
