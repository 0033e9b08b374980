// Package frame reads fixed-size grayscale frame blocks from a raw stream and
// quantizes them for stable hashing across re-encodes.
package frame

import "io"

const (
	// Width and Height describe the downsampled frame geometry.
	Width  = 16
	Height = 16
	// Size is the byte length of one raw frame block.
	Size = Width * Height
	// Levels is the number of representable gray levels after quantization.
	Levels = 16
)

// Frame is one normalized frame: Size 8-bit samples with the low four bits
// cleared. Each Frame is an independently owned buffer; callers copy rather
// than alias when handing frames between roles.
type Frame [Size]byte

// Quantize clears the low four bits of every sample in place. Flattening the
// fine gray levels keeps the content hash stable between lightly different
// encodes of the same footage.
func (f *Frame) Quantize() {
	for i := range f {
		f[i] &= 0xF0
	}
}

// Reader yields normalized frames from a flat byte stream. The stream carries
// no framing; a short or empty read marks the end of the stream.
type Reader struct {
	src io.Reader
}

// NewReader wraps a raw grayscale byte stream.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src}
}

// Next fills dst with the next quantized frame. It reports false once fewer
// than Size bytes remain; a truncated trailing block and an upstream read
// failure both end the stream rather than surfacing an error.
func (r *Reader) Next(dst *Frame) bool {
	if _, err := io.ReadFull(r.src, dst[:]); err != nil {
		return false
	}
	dst.Quantize()
	return true
}
