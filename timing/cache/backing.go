package cache

// BackingStore supplies the bytes of cache lines on a miss.
type BackingStore interface {
	// Read fetches size bytes starting at addr.
	Read(addr uint64, size int) []byte
}

// ImageBacking serves instruction fetches from a raw binary image loaded
// at address zero. Bytes past the end of the image read as zero.
type ImageBacking struct {
	data []byte
}

// NewImageBacking creates a new ImageBacking over data.
func NewImageBacking(data []byte) *ImageBacking {
	return &ImageBacking{data: data}
}

// Read fetches data from the image.
func (m *ImageBacking) Read(addr uint64, size int) []byte {
	out := make([]byte, size)
	if addr >= uint64(len(m.data)) {
		return out
	}
	copy(out, m.data[addr:])
	return out
}
