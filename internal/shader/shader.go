// Package shader defines the pixel-shader external collaborator (spec.md
// §1/§6) and the driver that invokes it across a rectangle, row set, or
// tile while packing results into a contiguous payload buffer.
package shader

import "github.com/jlowden/raytrace-partition/internal/config"

// Shader produces the three channel values for one pixel. Implementations
// must be pure, deterministic, and thread-safe, and must not touch
// anything outside the three values they return (spec.md §1).
type Shader interface {
	Shade(row, col int, cfg config.ConfigData) (c0, c1, c2 float32)
}

// ShadeRect shades every pixel of [firstRow..lastRow] x [firstCol..lastCol]
// into a freshly packed payload buffer, appending the caller's
// self-measured compute time as the trailing float (spec.md §3: "the
// final trailing float in every worker payload is the worker's
// self-measured compute time"). now must return a monotonic wall-clock
// reading in seconds.
//
// The guard below reproduces original_source/master.cpp and slave.cpp's
// staticSquareBlocksMaster/Slave exactly, including the axis-swapped,
// off-by-one bound (x < width-1 && y < height-1 where x is the row):
// SPEC_FULL.md §11 resolves this as canonical rather than a bug to fix,
// because S3's pixel-identity is defined against the original's output.
// It only applies when guard is non-nil (STATIC_BLOCKS); every other
// strategy passes a nil guard and shades the full rectangle.
func ShadeRect(s Shader, cfg config.ConfigData, firstRow, lastRow, firstCol, lastCol int, guard func(row, col int) bool, now func() float64) []float32 {
	rows := lastRow - firstRow + 1
	cols := lastCol - firstCol + 1
	if rows <= 0 || cols <= 0 {
		return []float32{float32(0)}
	}

	buf := make([]float32, rows*cols*3+1)
	start := now()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			row, col := firstRow+i, firstCol+j
			if guard != nil && !guard(row, col) {
				continue
			}
			idx := 3 * (i*cols + j)
			buf[idx], buf[idx+1], buf[idx+2] = s.Shade(row, col, cfg)
		}
	}
	buf[len(buf)-1] = float32(now() - start)
	return buf
}

// ShadeRows shades every pixel of the given rows (each spanning the full
// image width) into a payload buffer packed in rows[] order, appending
// the trailing compute-time float. Used by STATIC_CYCLES_HORIZONTAL.
func ShadeRows(s Shader, cfg config.ConfigData, rows []int, width int, now func() float64) []float32 {
	buf := make([]float32, len(rows)*width*3+1)
	start := now()
	for i, row := range rows {
		for col := 0; col < width; col++ {
			idx := 3 * (i*width + col)
			buf[idx], buf[idx+1], buf[idx+2] = s.Shade(row, col, cfg)
		}
	}
	buf[len(buf)-1] = float32(now() - start)
	return buf
}

// ShadeTile shades a DYNAMIC work unit into a payload buffer, appending
// the trailing compute-time float.
func ShadeTile(s Shader, cfg config.ConfigData, startRow, startCol, tileWidth, tileHeight int, now func() float64) []float32 {
	buf := make([]float32, tileWidth*tileHeight*3+1)
	start := now()
	for i := 0; i < tileHeight; i++ {
		for j := 0; j < tileWidth; j++ {
			idx := 3 * (i*tileWidth + j)
			buf[idx], buf[idx+1], buf[idx+2] = s.Shade(startRow+i, startCol+j, cfg)
		}
	}
	buf[len(buf)-1] = float32(now() - start)
	return buf
}

// BlocksGuard is the axis-swapped, off-by-one in-bounds check
// original_source/master.cpp's staticSquareBlocksMaster/Slave apply on
// top of the rectangle geometry.Blocks computes (see SPEC_FULL.md §11).
// x is the pixel's row, y its column — matching the original's own
// (mis)naming — so callers must pass ShadeRect a guard built from this,
// not a fresh width/height check of their own, to avoid the two
// diverging.
func BlocksGuard(width, height int) func(row, col int) bool {
	return func(row, col int) bool {
		return row < width-1 && col < height-1
	}
}
