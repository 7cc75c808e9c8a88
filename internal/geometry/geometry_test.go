package geometry

import "testing"

// TestStripsCoverage checks that every rank's vertical strip is disjoint
// and that the union covers every column exactly once (spec.md §8
// property 1: every pixel is owned by exactly one rank).
func TestStripsCoverage(t *testing.T) {
	const width, height, procs = 37, 10, 4
	covered := make([]int, width)

	for rank := 0; rank < procs; rank++ {
		r := Strips(width, height, procs, rank)
		if r.FirstRow != 0 || r.LastRow != height-1 {
			t.Fatalf("rank %d: expected full row range, got [%d,%d]", rank, r.FirstRow, r.LastRow)
		}
		for col := r.FirstCol; col <= r.LastCol; col++ {
			covered[col]++
		}
	}

	for col, count := range covered {
		if count != 1 {
			t.Errorf("column %d covered %d times, want 1", col, count)
		}
	}
}

// TestStripsLastRankAbsorbsRemainder mirrors
// original_source/master.cpp's staticStripsVerticalMaster: the last rank
// gets width % procCount extra columns.
func TestStripsLastRankAbsorbsRemainder(t *testing.T) {
	r := Strips(10, 5, 3, 2)
	// 10/3 = 3 cols/rank, remainder 1: rank 2 should own cols [6,9].
	if r.FirstCol != 6 || r.LastCol != 9 {
		t.Fatalf("got [%d,%d], want [6,9]", r.FirstCol, r.LastCol)
	}
}

// TestBlocksCoverage checks that the union of every rank's block rectangle
// covers the full image, which the extend-to-edge logic in blockRect
// exists to guarantee.
func TestBlocksCoverage(t *testing.T) {
	const width, height, procs = 64, 64, 4
	covered := make([][]int, height)
	for i := range covered {
		covered[i] = make([]int, width)
	}

	for rank := 0; rank < procs; rank++ {
		r := Blocks(width, height, procs, rank)
		if r.Empty() {
			continue
		}
		for row := r.FirstRow; row <= r.LastRow; row++ {
			for col := r.FirstCol; col <= r.LastCol; col++ {
				covered[row][col]++
			}
		}
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if covered[row][col] == 0 {
				t.Fatalf("pixel (%d,%d) is owned by no rank", row, col)
			}
		}
	}
}

// TestCyclesRoundRobin checks that STATIC_CYCLES_HORIZONTAL distributes
// every row to exactly one rank, interleaved in cycleSize-row blocks.
func TestCyclesRoundRobin(t *testing.T) {
	const width, height, procs, cycleSize = 8, 20, 3, 2
	owner := make([]int, height)
	for i := range owner {
		owner[i] = -1
	}

	for rank := 0; rank < procs; rank++ {
		for _, row := range Cycles(width, height, procs, rank, cycleSize) {
			if owner[row] != -1 {
				t.Fatalf("row %d owned by both rank %d and rank %d", row, owner[row], rank)
			}
			owner[row] = rank
		}
	}

	for row, r := range owner {
		if r == -1 {
			t.Errorf("row %d is owned by no rank", row)
		}
	}
}

// TestDynamicTilesCoverage checks that the generated tile queue exactly
// tiles the image with no gaps or overlaps, clipping edge tiles to bounds.
func TestDynamicTilesCoverage(t *testing.T) {
	const width, height, blockWidth, blockHeight = 20, 13, 8, 5
	covered := make([][]int, height)
	for i := range covered {
		covered[i] = make([]int, width)
	}

	for _, unit := range DynamicTiles(width, height, blockWidth, blockHeight) {
		for i := 0; i < unit.TileHeight; i++ {
			for j := 0; j < unit.TileWidth; j++ {
				covered[unit.StartRow+i][unit.StartCol+j]++
			}
		}
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if covered[row][col] != 1 {
				t.Fatalf("pixel (%d,%d) covered %d times, want 1", row, col, covered[row][col])
			}
		}
	}
}

func TestSentinelIsZeroValue(t *testing.T) {
	if !(WorkUnit{}).IsSentinel() {
		t.Fatal("zero-value WorkUnit must be the sentinel")
	}
	if (WorkUnit{StartRow: 1}).IsSentinel() {
		t.Fatal("non-zero WorkUnit must not be the sentinel")
	}
}

func TestGeometryIsDeterministic(t *testing.T) {
	a := Blocks(50, 50, 7, 3)
	b := Blocks(50, 50, 7, 3)
	if a != b {
		t.Fatalf("Blocks is not a pure function of its arguments: %+v != %+v", a, b)
	}
}
