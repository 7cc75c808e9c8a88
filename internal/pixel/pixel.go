// Package pixel holds the global image buffer and the index arithmetic
// and merge routines used to assemble it. spec.md §9 calls the row-major
// offset formula, not pointer walking, "the contract" — this package is
// that formula, plus the handful of merge routines that copy a rank's
// scratch buffer into the right place in the coordinator's buffer.
package pixel

import "math"

// channels is the fixed channel count per pixel (spec.md §3: "channel
// order fixed as (c0, c1, c2)").
const channels = 3

// New allocates a zeroed width*height*3 buffer, the coordinator's global
// pixel buffer (spec.md §3's "allocated by the coordinator at job
// start").
func New(width, height int) []float32 {
	return make([]float32, width*height*channels)
}

// Offset returns the index of row r, column c's first channel in a
// width-wide row-major buffer: offset(r,c) = 3*(r*width + c).
func Offset(width, row, col int) int {
	return channels * (row*width + col)
}

// MergeRect copies a rectangle's scratch buffer (row-major, packed
// contiguously starting at its own (FirstRow, FirstCol)) into dst at its
// true location. width is dst's row stride.
func MergeRect(dst []float32, width int, firstRow, lastRow, firstCol, lastCol int, src []float32) {
	if lastRow < firstRow || lastCol < firstCol {
		return
	}
	cols := lastCol - firstCol + 1
	for i := 0; i <= lastRow-firstRow; i++ {
		for j := 0; j < cols; j++ {
			dstIdx := Offset(width, firstRow+i, firstCol+j)
			srcIdx := channels * (i*cols + j)
			copy(dst[dstIdx:dstIdx+channels], src[srcIdx:srcIdx+channels])
		}
	}
}

// MergeRows copies a set of rows' scratch buffer (row-major, packed
// contiguously in rows[] order, each row spanning the full image width)
// into dst. Used by STATIC_CYCLES_HORIZONTAL.
func MergeRows(dst []float32, width int, rows []int, src []float32) {
	for i, row := range rows {
		dstIdx := Offset(width, row, 0)
		srcIdx := channels * i * width
		copy(dst[dstIdx:dstIdx+channels*width], src[srcIdx:srcIdx+channels*width])
	}
}

// MergeTile copies a DYNAMIC work unit's scratch buffer into dst at
// (startRow, startCol).
func MergeTile(dst []float32, width, startRow, startCol, tileWidth, tileHeight int, src []float32) {
	for i := 0; i < tileHeight; i++ {
		for j := 0; j < tileWidth; j++ {
			dstIdx := Offset(width, startRow+i, startCol+j)
			srcIdx := channels * (i*tileWidth + j)
			copy(dst[dstIdx:dstIdx+channels], src[srcIdx:srcIdx+channels])
		}
	}
}

// RGB is a clamped-to-[0,1] three-channel colour value. Adapted from the
// teacher's shared/colour.RGB (same math.Max/math.Min clamping idiom),
// repurposed from an 8-bit-backed object colour onto this spec's
// float32 channel triple.
type RGB struct {
	C0, C1, C2 float32
}

// Clamp returns c with every channel clamped to [0,1].
func (c RGB) Clamp() RGB {
	return RGB{
		C0: clamp01(c.C0),
		C1: clamp01(c.C1),
		C2: clamp01(c.C2),
	}
}

func clamp01(v float32) float32 {
	return float32(math.Max(0.0, math.Min(float64(v), 1.0)))
}
