package coordinator

import (
	"fmt"

	"github.com/jlowden/raytrace-partition/internal/config"
	"github.com/jlowden/raytrace-partition/internal/geometry"
	"github.com/jlowden/raytrace-partition/internal/pixel"
	"github.com/jlowden/raytrace-partition/internal/transport"
)

// RunDynamic implements the centralized dynamic scheduler (spec.md §4.5),
// grounded directly on original_source/master.cpp's dynamicMaster: a FIFO
// queue of tiles and an in-flight table replace the original's
// std::queue<DynamicUnit>/std::map<int, DynamicUnit>.
func RunDynamic(cfg config.ConfigData, tr transport.Transport, t *Timing) ([]float32, error) {
	buf := pixel.New(cfg.Width, cfg.Height)

	queue := geometry.DynamicTiles(cfg.Width, cfg.Height, cfg.DynamicBlockWidth, cfg.DynamicBlockHeight)
	inFlight := make(map[int]geometry.WorkUnit)
	completedWorkers := 0

	for completedWorkers < tr.ProcCount()-1 {
		var source int
		var tag transport.Tag
		err := t.Time(tr.Now, func() error {
			var probeErr error
			source, tag, probeErr = tr.Probe(transport.Any, transport.Any)
			return probeErr
		})
		if err != nil {
			return nil, err
		}

		switch tag {
		case transport.Request:
			if err := t.Time(tr.Now, func() error {
				_, _, err := tr.Recv(source, transport.Request)
				return err
			}); err != nil {
				return nil, err
			}

			if len(queue) > 0 {
				unit := queue[0]
				queue = queue[1:]
				assign := transport.Envelope{
					Tag: transport.Assign,
					Ints: []int32{
						int32(unit.StartRow), int32(unit.StartCol),
						int32(unit.TileWidth), int32(unit.TileHeight),
					},
				}
				if err := t.Time(tr.Now, func() error { return tr.Send(source, assign) }); err != nil {
					return nil, err
				}
				inFlight[source] = unit
			} else {
				sentinel := transport.Envelope{Tag: transport.Assign, Ints: []int32{0, 0, 0, 0}}
				if err := t.Time(tr.Now, func() error { return tr.Send(source, sentinel) }); err != nil {
					return nil, err
				}
				completedWorkers++
			}

		case transport.Result:
			unit, ok := inFlight[source]
			if !ok {
				return nil, fmt.Errorf("coordinator: RESULT from rank %d with no in-flight tile", source)
			}
			want := unit.Area()*3 + 1

			var payload []float32
			err := t.Time(tr.Now, func() error {
				_, env, err := tr.Recv(source, transport.Result)
				if err != nil {
					return err
				}
				payload = env.Floats
				return nil
			})
			if err != nil {
				return nil, err
			}
			if len(payload) != want {
				return nil, fmt.Errorf("coordinator: rank %d's tile result has %d floats, want %d", source, len(payload), want)
			}

			t.AddComputation(float64(payload[len(payload)-1]))
			pixel.MergeTile(buf, cfg.Width, unit.StartRow, unit.StartCol, unit.TileWidth, unit.TileHeight, payload)
			delete(inFlight, source)

		default:
			return nil, fmt.Errorf("coordinator: unexpected tag %d from rank %d", tag, source)
		}
	}

	return buf, nil
}
