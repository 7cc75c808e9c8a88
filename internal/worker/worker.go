// Package worker implements every non-zero rank's role (spec.md §4.6):
// for the static strategies it shades its own share once and sends a
// single STATIC_RESULT; for DYNAMIC it loops requesting, shading, and
// returning tiles until the coordinator's sentinel assignment arrives.
// Grounded on original_source/slave.cpp's slaveMain switch.
package worker

import (
	"fmt"
	"log"

	"github.com/jlowden/raytrace-partition/internal/config"
	"github.com/jlowden/raytrace-partition/internal/geometry"
	"github.com/jlowden/raytrace-partition/internal/shader"
	"github.com/jlowden/raytrace-partition/internal/transport"
)

// Run dispatches by cfg.Mode, mirroring original_source/slave.cpp's
// slaveMain. PART_MODE_NONE does nothing: sequential operation never
// involves any rank but the coordinator.
func Run(cfg config.ConfigData, tr transport.Transport, s shader.Shader, logger *log.Logger) error {
	switch cfg.Mode {
	case config.ModeNone:
		return nil

	case config.ModeStripsVertical:
		own := geometry.Strips(cfg.Width, cfg.Height, tr.ProcCount(), tr.Rank())
		payload := shader.ShadeRect(s, cfg, own.FirstRow, own.LastRow, own.FirstCol, own.LastCol, nil, tr.Now)
		return tr.Send(0, transport.Envelope{Tag: transport.StaticResult, Floats: payload})

	case config.ModeBlocks:
		own := geometry.Blocks(cfg.Width, cfg.Height, tr.ProcCount(), tr.Rank())
		guard := shader.BlocksGuard(cfg.Width, cfg.Height)
		payload := shader.ShadeRect(s, cfg, own.FirstRow, own.LastRow, own.FirstCol, own.LastCol, guard, tr.Now)
		return tr.Send(0, transport.Envelope{Tag: transport.StaticResult, Floats: payload})

	case config.ModeCyclesHorizontal:
		rows := geometry.Cycles(cfg.Width, cfg.Height, tr.ProcCount(), tr.Rank(), cfg.CycleSize)
		payload := shader.ShadeRows(s, cfg, rows, cfg.Width, tr.Now)
		return tr.Send(0, transport.Envelope{Tag: transport.StaticResult, Floats: payload})

	case config.ModeDynamic:
		return runDynamic(cfg, tr, s)

	default:
		logger.Printf("This mode (%s) is not currently implemented.", cfg.Mode)
		return nil
	}
}

// runDynamic implements PART_MODE_DYNAMIC, grounded on
// original_source/slave.cpp's dynamicSlave: request a tile, receive an
// assignment, stop on the (0,0,0,0) sentinel, otherwise shade and return
// the tile's payload and loop.
func runDynamic(cfg config.ConfigData, tr transport.Transport, s shader.Shader) error {
	for {
		if err := tr.Send(0, transport.Envelope{Tag: transport.Request}); err != nil {
			return fmt.Errorf("worker: sending request: %w", err)
		}

		_, env, err := tr.Recv(0, transport.Assign)
		if err != nil {
			return fmt.Errorf("worker: receiving assignment: %w", err)
		}
		if len(env.Ints) != 4 {
			return fmt.Errorf("worker: assignment has %d ints, want 4", len(env.Ints))
		}
		startRow, startCol := int(env.Ints[0]), int(env.Ints[1])
		tileWidth, tileHeight := int(env.Ints[2]), int(env.Ints[3])

		unit := geometry.WorkUnit{StartRow: startRow, StartCol: startCol, TileWidth: tileWidth, TileHeight: tileHeight}
		if unit.IsSentinel() {
			return nil
		}

		payload := shader.ShadeTile(s, cfg, startRow, startCol, tileWidth, tileHeight, tr.Now)
		if err := tr.Send(0, transport.Envelope{Tag: transport.Result, Floats: payload}); err != nil {
			return fmt.Errorf("worker: sending result: %w", err)
		}
	}
}
