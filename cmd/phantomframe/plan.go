package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/makalin/phantomframe"
	"github.com/makalin/phantomframe/embed"
	"github.com/makalin/phantomframe/limits"
	"github.com/makalin/phantomframe/payload"
)

// planInstruction is the wire form of one embedding instruction.
type planInstruction struct {
	X     uint32 `json:"x"`
	Y     uint32 `json:"y"`
	Delta int8   `json:"delta"`
}

// planReport is the JSON document a codec integration consumes.
type planReport struct {
	Payload      string            `json:"payload"`
	Seed         uint32            `json:"seed"`
	Frame        uint32            `json:"frame"`
	Width        uint32            `json:"width"`
	Height       uint32            `json:"height"`
	TotalBlocks  uint32            `json:"total_blocks"`
	Instructions []planInstruction `json:"instructions"`
}

// runPlan emits one frame's embedding instructions as JSON. The core
// computes what changes; applying the deltas to pixels or coefficients
// is the consumer's job.
func runPlan(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	var (
		width      = fs.Uint("width", 1920, "Frame width in pixels")
		height     = fs.Uint("height", 1080, "Frame height in pixels")
		seed       = fs.Uint("seed", 0, "Scheduling seed")
		density    = fs.Float64("density", limits.DefaultBlockDensity, "Block density in (0, 1]")
		period     = fs.Uint("period", limits.DefaultTemporalPeriod, "Temporal period in frames")
		frame      = fs.Uint("frame", 0, "Frame index to plan")
		payloadHex = fs.String("payload", "", "Payload as 32 hex characters (random when empty)")
		verbose    = fs.Bool("verbose", false, "Enable verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	configureLogging(*verbose)

	params := embed.DefaultParameters()
	params.Seed = uint32(*seed)
	params.BlockDensity = *density
	params.TemporalPeriod = uint32(*period)

	if *payloadHex == "" {
		p, err := payload.NewRandomSource(nil).NewPayload()
		if err != nil {
			return err
		}
		params.Payload = p
	} else {
		p, err := payload.Parse(*payloadHex)
		if err != nil {
			return err
		}
		params.Payload = p
	}

	enc, err := phantomframe.NewEncoder(params)
	if err != nil {
		return err
	}
	if err := enc.Initialize(uint32(*width), uint32(*height)); err != nil {
		return err
	}

	ins := enc.InstructionsForFrame(uint32(*frame))
	report := planReport{
		Payload:      params.Payload.String(),
		Seed:         params.Seed,
		Frame:        uint32(*frame),
		Width:        uint32(*width),
		Height:       uint32(*height),
		TotalBlocks:  enc.Stats().TotalBlocks,
		Instructions: make([]planInstruction, 0, len(ins)),
	}
	for _, in := range ins {
		report.Instructions = append(report.Instructions, planInstruction{
			X:     in.X,
			Y:     in.Y,
			Delta: in.Perturbation,
		})
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	return out.Encode(report)
}
