// Package coordinator implements the rank-0 role (spec.md §4.4/§4.5):
// dispatch by partitioning mode, collection of worker contributions,
// assembly of the final pixel buffer, and emission of the timing report.
package coordinator

import (
	"fmt"
	"log"

	"github.com/jlowden/raytrace-partition/internal/config"
	"github.com/jlowden/raytrace-partition/internal/imagewriter"
	"github.com/jlowden/raytrace-partition/internal/shader"
	"github.com/jlowden/raytrace-partition/internal/transport"
)

// Run dispatches to the strategy named by cfg.Mode, collects the full
// image, emits the timing report, and hands the buffer to writer.Write.
// Grounded on original_source/master.cpp's masterMain: the switch over
// partitioning modes, the "not currently implemented" default branch
// (spec.md §7's Configuration error policy — no image is written), and
// the render-and-then-save sequencing.
func Run(cfg config.ConfigData, tr transport.Transport, s shader.Shader, writer imagewriter.Writer, logger *log.Logger) error {
	var buf []float32
	var err error
	t := &Timing{}

	switch cfg.Mode {
	case config.ModeNone:
		start := tr.Now()
		buf = RunSequential(cfg, s)
		t.AddComputation(tr.Now() - start)

	case config.ModeStripsVertical:
		buf, err = RunStrips(cfg, tr, s, t)

	case config.ModeBlocks:
		buf, err = RunBlocks(cfg, tr, s, t)

	case config.ModeCyclesHorizontal:
		buf, err = RunCycles(cfg, tr, s, t)

	case config.ModeDynamic:
		buf, err = RunDynamic(cfg, tr, t)

	default:
		logger.Printf("This mode (%s) is not currently implemented.", cfg.Mode)
		return nil
	}
	if err != nil {
		return fmt.Errorf("coordinator: collecting %s: %w", cfg.Mode, err)
	}

	t.Report(logger)

	path := imagewriter.Path(cfg)
	logger.Printf("Image will be saved to: %s", path)
	return writer.Write(path, buf, cfg)
}
