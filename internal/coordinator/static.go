package coordinator

import (
	"fmt"

	"github.com/jlowden/raytrace-partition/internal/config"
	"github.com/jlowden/raytrace-partition/internal/geometry"
	"github.com/jlowden/raytrace-partition/internal/pixel"
	"github.com/jlowden/raytrace-partition/internal/shader"
	"github.com/jlowden/raytrace-partition/internal/transport"
)

// collectStatic runs the common shape shared by every static strategy:
// shade the coordinator's own share, then receive and merge every other
// rank's STATIC_RESULT payload in ascending rank order, recomputing each
// rank's geometry locally rather than trusting anything the payload says
// (spec.md §4.4: "keep the protocol header-free"). shadeOwn/mergeOwn shade
// and place the coordinator's own contribution; payloadLen/merge describe
// how to size and place every other rank's contribution.
func collectStatic(
	tr transport.Transport,
	t *Timing,
	shadeOwn func() []float32,
	mergeOwn func(own []float32),
	payloadLen func(rank int) int,
	merge func(rank int, payload []float32),
) error {
	own := shadeOwn()
	t.AddComputation(float64(own[len(own)-1]))
	mergeOwn(own)

	for rank := 1; rank < tr.ProcCount(); rank++ {
		want := payloadLen(rank)
		var payload []float32
		err := t.Time(tr.Now, func() error {
			_, env, err := tr.Recv(rank, transport.StaticResult)
			if err != nil {
				return err
			}
			payload = env.Floats
			return nil
		})
		if err != nil {
			return err
		}
		// Payload-length law (spec.md §8 property 4): the coordinator
		// never interprets a partial payload.
		if len(payload) != want {
			return fmt.Errorf("coordinator: rank %d sent %d floats, geometry expects %d", rank, len(payload), want)
		}

		t.AddComputation(float64(payload[len(payload)-1]))
		merge(rank, payload)
	}
	return nil
}

// RunSequential implements PART_MODE_NONE: the coordinator shades the
// entire image itself and returns the width*height*3 pixel buffer (the
// driver's trailing compute-time float is dropped; Run times the call
// itself). communicationTime stays at zero, matching
// original_source/master.cpp's masterSequential, so the C-to-C ratio is
// plain floating-point division of zero by the computation time, never
// special-cased (SPEC_FULL.md §11).
func RunSequential(cfg config.ConfigData, s shader.Shader) []float32 {
	buf := shader.ShadeRect(s, cfg, 0, cfg.Height-1, 0, cfg.Width-1, nil, func() float64 { return 0 })
	return buf[:len(buf)-1]
}

// RunStrips implements PART_MODE_STATIC_STRIPS_VERTICAL on the
// coordinator, grounded on
// original_source/master.cpp's staticStripsVerticalMaster.
func RunStrips(cfg config.ConfigData, tr transport.Transport, s shader.Shader, t *Timing) ([]float32, error) {
	buf := pixel.New(cfg.Width, cfg.Height)
	own := geometry.Strips(cfg.Width, cfg.Height, tr.ProcCount(), tr.Rank())

	err := collectStatic(tr, t,
		func() []float32 {
			return shader.ShadeRect(s, cfg, own.FirstRow, own.LastRow, own.FirstCol, own.LastCol, nil, tr.Now)
		},
		func(payload []float32) {
			pixel.MergeRect(buf, cfg.Width, own.FirstRow, own.LastRow, own.FirstCol, own.LastCol, payload)
		},
		func(rank int) int {
			r := geometry.Strips(cfg.Width, cfg.Height, tr.ProcCount(), rank)
			return r.Area()*3 + 1
		},
		func(rank int, payload []float32) {
			r := geometry.Strips(cfg.Width, cfg.Height, tr.ProcCount(), rank)
			pixel.MergeRect(buf, cfg.Width, r.FirstRow, r.LastRow, r.FirstCol, r.LastCol, payload)
		},
	)
	return buf, err
}

// RunBlocks implements PART_MODE_STATIC_BLOCKS, including the preserved
// axis-swapped edge guard from SPEC_FULL.md §11.
func RunBlocks(cfg config.ConfigData, tr transport.Transport, s shader.Shader, t *Timing) ([]float32, error) {
	buf := pixel.New(cfg.Width, cfg.Height)
	own := geometry.Blocks(cfg.Width, cfg.Height, tr.ProcCount(), tr.Rank())
	guard := shader.BlocksGuard(cfg.Width, cfg.Height)

	err := collectStatic(tr, t,
		func() []float32 {
			return shader.ShadeRect(s, cfg, own.FirstRow, own.LastRow, own.FirstCol, own.LastCol, guard, tr.Now)
		},
		func(payload []float32) {
			pixel.MergeRect(buf, cfg.Width, own.FirstRow, own.LastRow, own.FirstCol, own.LastCol, payload)
		},
		func(rank int) int {
			r := geometry.Blocks(cfg.Width, cfg.Height, tr.ProcCount(), rank)
			return r.Area()*3 + 1
		},
		func(rank int, payload []float32) {
			r := geometry.Blocks(cfg.Width, cfg.Height, tr.ProcCount(), rank)
			pixel.MergeRect(buf, cfg.Width, r.FirstRow, r.LastRow, r.FirstCol, r.LastCol, payload)
		},
	)
	return buf, err
}

// RunCycles implements PART_MODE_STATIC_CYCLES_HORIZONTAL.
func RunCycles(cfg config.ConfigData, tr transport.Transport, s shader.Shader, t *Timing) ([]float32, error) {
	buf := pixel.New(cfg.Width, cfg.Height)
	ownRows := geometry.Cycles(cfg.Width, cfg.Height, tr.ProcCount(), tr.Rank(), cfg.CycleSize)

	err := collectStatic(tr, t,
		func() []float32 {
			return shader.ShadeRows(s, cfg, ownRows, cfg.Width, tr.Now)
		},
		func(payload []float32) {
			pixel.MergeRows(buf, cfg.Width, ownRows, payload)
		},
		func(rank int) int {
			rows := geometry.Cycles(cfg.Width, cfg.Height, tr.ProcCount(), rank, cfg.CycleSize)
			return len(rows)*cfg.Width*3 + 1
		},
		func(rank int, payload []float32) {
			rows := geometry.Cycles(cfg.Width, cfg.Height, tr.ProcCount(), rank, cfg.CycleSize)
			pixel.MergeRows(buf, cfg.Width, rows, payload)
		},
	)
	return buf, err
}
