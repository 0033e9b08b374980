// Package segment turns an ordered stream of normalized frames into a
// sequence of scene identities via change detection and a rolling content
// hash.
package segment

import (
	"hash/crc32"
	"math"

	"scenedup/internal/frame"
	"scenedup/internal/scene"
)

// DefaultChangeThreshold is the change-distance score above which two
// consecutive frames are deemed to belong to different scenes.
const DefaultChangeThreshold = 4.5

// castagnoli selects the CRC-32C polynomial, which has hardware support on
// amd64 and arm64.
var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Distance returns the root-mean-square pixel delta between two normalized
// frames, scaled so the score is independent of frame size and sample depth.
// Larger means more different.
func Distance(a, b *frame.Frame) float64 {
	// 8-bit deltas squared fit 16 bits; frame.Size of them fit comfortably
	// in a uint32 accumulator.
	var sum uint32
	for i := 0; i < frame.Size; i++ {
		delta := int32(a[i]) - int32(b[i])
		sum += uint32(delta * delta)
	}
	return math.Sqrt(float64(sum) / (frame.Size * 256))
}

// Segmenter is a streaming state machine over one frame stream. Frames are
// folded into an accumulating CRC in arrival order, so the hash distinguishes
// the same frames in a different order. All state is per-stream; concurrent
// analyses each need their own Segmenter.
type Segmenter struct {
	threshold  float64
	frameRate  int
	crc        uint32
	index      uint32
	sceneStart uint32
	last       frame.Frame
	first      frame.Frame
}

// New returns a Segmenter for a stream at the given frame rate. The rate only
// converts frame spans into millisecond durations; it never affects change
// detection or hashing.
func New(frameRate int, threshold float64) *Segmenter {
	if threshold <= 0 {
		threshold = DefaultChangeThreshold
	}
	return &Segmenter{threshold: threshold, frameRate: frameRate}
}

// Feed consumes the next frame. When the frame opens a new scene, Feed
// returns the identity of the just-completed scene and true. The very first
// frame never completes a scene, however different it is from the zero frame.
func (s *Segmenter) Feed(f *frame.Frame) (scene.ID, bool) {
	var completed scene.ID
	emitted := false

	if Distance(f, &s.last) > s.threshold {
		if s.index > 0 {
			completed = s.currentID()
			emitted = true
		}
		s.crc = 0
		s.sceneStart = s.index
	}
	if s.index == s.sceneStart {
		s.first = *f
	}

	s.crc = crc32.Update(s.crc, castagnoli, f[:])
	s.last = *f
	s.index++
	return completed, emitted
}

// Flush returns the identity of the in-progress scene. Every stream yields at
// least one scene: an exhausted stream with no detected boundary spans all
// frames, and a zero-frame stream degenerates to the empty hash with duration
// zero.
func (s *Segmenter) Flush() scene.ID {
	return s.currentID()
}

// FirstFrame returns a copy of the first frame of the current scene. The
// snapshot exists for diagnostics only and never feeds the hash.
func (s *Segmenter) FirstFrame() frame.Frame {
	return s.first
}

// Frames returns the number of frames consumed so far.
func (s *Segmenter) Frames() int {
	return int(s.index)
}

func (s *Segmenter) currentID() scene.ID {
	span := s.index - s.sceneStart
	return scene.ID{
		Hash:       s.crc,
		DurationMs: span * 1000 / uint32(s.frameRate),
	}
}
