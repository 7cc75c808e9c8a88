// Package geometry computes the pixel rectangles, row sets, and tiles
// that each rank owns under the four static partitioning strategies plus
// the dynamic tile queue. Every function here is a pure function of its
// arguments (spec.md §8 property 2) so the coordinator and worker roles
// can recompute the same geometry independently and never disagree
// (spec.md §9's "duplicated geometry code" design note) — this package is
// the single source of truth original_source/master.cpp and slave.cpp
// each reimplemented by hand.
package geometry

// Rect is an inclusive pixel rectangle: columns [FirstCol, LastCol] across
// every row in [FirstRow, LastRow]. An empty rectangle (LastCol < FirstCol
// or LastRow < FirstRow) owns zero pixels.
type Rect struct {
	FirstRow, LastRow int
	FirstCol, LastCol int
}

// Empty reports whether r owns zero pixels.
func (r Rect) Empty() bool {
	return r.LastRow < r.FirstRow || r.LastCol < r.FirstCol
}

// Area returns the number of pixels r owns.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return (r.LastRow - r.FirstRow + 1) * (r.LastCol - r.FirstCol + 1)
}

// WorkUnit is one dynamically-dispatched tile (spec.md §3).
type WorkUnit struct {
	StartRow, StartCol int
	TileWidth           int
	TileHeight          int
}

// Area returns the number of pixels the tile covers.
func (w WorkUnit) Area() int {
	return w.TileWidth * w.TileHeight
}

// Sentinel is the (0,0,0,0) termination tile (spec.md §4.5/§4.6).
var Sentinel = WorkUnit{}

// IsSentinel reports whether w is the termination tile.
func (w WorkUnit) IsSentinel() bool {
	return w == Sentinel
}

// Strips computes rank's vertical-strip rectangle under
// STATIC_STRIPS_VERTICAL. Every row is included; the last rank absorbs
// width % procCount leftover columns, exactly as
// original_source/master.cpp's staticStripsVerticalMaster.
func Strips(width, height, procCount, rank int) Rect {
	cols := width / procCount
	extra := width % procCount

	firstCol := rank * cols
	lastCol := firstCol + cols - 1
	if rank == procCount-1 {
		lastCol += extra
	}

	return Rect{FirstRow: 0, LastRow: height - 1, FirstCol: firstCol, LastCol: lastCol}
}

// Blocks computes rank's square-tile rectangle under STATIC_BLOCKS,
// following original_source/master.cpp's staticSquareBlocksMaster
// formula: round procCount up to the next perfect square to get a grid,
// derive a tile side from the image area divided by that grid, then
// extend edge tiles outward so the grid's union covers the whole image.
//
// SPEC_FULL.md §11 records the one deliberate departure from "clean"
// geometry: the original also guards each shaded pixel with
// x < width-1 && y < height-1 using axes swapped against the rectangle
// it just computed (x is the row), which silently leaves unshaded every
// pixel whose row is >= width-1 or whose column is >= height-1 — for a
// square image, the final row and column. That guard isn't part of this function — it belongs
// to the shader driver, see shader.BlocksGuard — so that Blocks
// itself stays a faithful description of the owned rectangle.
func Blocks(width, height, procCount, rank int) Rect {
	root := isqrt(procCount)
	grid := procCount
	if root*root != procCount {
		grid = (root + 1) * (root + 1)
	}
	side := width * height / grid
	dim := isqrt(side)
	if dim == 0 {
		dim = 1
	}

	max := width / dim
	if max == 0 {
		max = 1
	}
	hOffset := width - dim*max
	if hOffset > 1 {
		hOffset /= 2
	}
	vOffset := height - dim*max
	if vOffset > 1 {
		vOffset /= 2
	}

	return blockRect(width, height, dim, max, hOffset, vOffset, procCount, rank)
}

func blockRect(width, height, dim, max, hOffset, vOffset, procCount, rank int) Rect {
	firstCol := (rank%max)*dim + hOffset
	lastCol := firstCol + dim - 1
	firstRow := (rank/max)*dim + vOffset
	lastRow := firstRow + dim - 1

	if firstCol == hOffset {
		firstCol = 0
	}
	if lastCol == dim*max+hOffset {
		lastCol = width - 1
	}
	if firstRow == vOffset {
		firstRow = 0
	}
	if lastRow == dim*max+vOffset || (procCount-rank-1) < max {
		lastRow = height - 1
	}

	return Rect{FirstRow: firstRow, LastRow: lastRow, FirstCol: firstCol, LastCol: lastCol}
}

// Cycles computes rank's owned row list under STATIC_CYCLES_HORIZONTAL:
// interleaved blocks of cycleSize rows, spread round-robin across ranks.
// Grounded on original_source/master.cpp's masterStaticCyclesHorizontal
// (and slave.cpp's matching loop).
func Cycles(width, height, procCount, rank, cycleSize int) []int {
	var rows []int
	for start := rank * cycleSize; start < height; start += cycleSize * procCount {
		for r := 0; r < cycleSize; r++ {
			row := start + r
			if row < height {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// DynamicTiles enumerates the full work queue for the DYNAMIC strategy,
// tiling the image by (blockWidth, blockHeight) with right/bottom tiles
// clipped to the image bounds. Grounded on
// original_source/master.cpp's dynamicMaster tile-generation loop.
func DynamicTiles(width, height, blockWidth, blockHeight int) []WorkUnit {
	var tiles []WorkUnit
	for row := 0; row < height; row += blockHeight {
		for col := 0; col < width; col += blockWidth {
			tiles = append(tiles, WorkUnit{
				StartRow:   row,
				StartCol:   col,
				TileHeight: min(blockHeight, height-row),
				TileWidth:  min(blockWidth, width-col),
			})
		}
	}
	return tiles
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// isqrt returns floor(sqrt(n)) for n >= 0.
func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
