// Package embed plans which blocks of which frames carry watermark signal.
//
// A Scheduler owns one stream's parameters and geometry as an immutable
// snapshot behind an atomic pointer: readers plan frames lock-free while
// Configure and Initialize publish replacement snapshots wholesale. The
// scheduler decides what to change, not how; applying the perturbations to
// pixels or transform coefficients belongs to the codec integration
// consuming the instructions.
package embed

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/makalin/phantomframe/selector"
)

// Instruction directs one block perturbation in one frame.
type Instruction struct {
	// X, Y are the pixel coordinates of the block's top-left corner.
	X uint32
	Y uint32

	// Perturbation is the signed nudge direction: -1, 0, or +1.
	Perturbation int8

	// FrameIndex is the frame the instruction applies to.
	FrameIndex uint32
}

// schedule is one immutable parameters-plus-geometry snapshot. Readers
// load it atomically and never observe a half-applied change.
type schedule struct {
	params StreamParameters

	// state is nil until the stream geometry is known.
	state *selector.State

	// active is the number of blocks perturbed per frame.
	active uint32
}

// buildSchedule derives the per-frame block budget from the parameters
// and geometry: the density is spread over one full temporal period.
func buildSchedule(params StreamParameters, state *selector.State) *schedule {
	s := &schedule{params: params, state: state}
	if state != nil {
		total := uint64(state.TotalBlocks)
		budget := uint64(float64(total) * params.BlockDensity / float64(params.TemporalPeriod))
		s.active = uint32(min(total, budget))
	}
	return s
}

// Scheduler plans embedding instructions for one stream. Frame planning is
// lock-free; parameter and geometry changes serialize on a writer mutex
// and publish a fresh snapshot.
type Scheduler struct {
	// mu serializes writers. Readers only load the atomic pointer.
	mu      sync.Mutex
	current atomic.Pointer[schedule]

	framesPlanned atomic.Uint64
	blocksTouched atomic.Uint64
}

// NewScheduler creates a scheduler for the given parameters. The stream
// geometry is not yet known; planning stays empty until Initialize.
func NewScheduler(params StreamParameters) (*Scheduler, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	s := &Scheduler{}
	s.current.Store(buildSchedule(params, nil))

	logrus.WithFields(logrus.Fields{
		"function": "NewScheduler",
		"seed":     params.Seed,
		"density":  params.BlockDensity,
		"period":   params.TemporalPeriod,
	}).Info("Embedding scheduler created")
	return s, nil
}

// Initialize sets the stream geometry and computes the block grid and
// permutation for it. Calling it again regenerates the schedule for the
// new dimensions.
func (s *Scheduler) Initialize(width, height uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	state, err := selector.NewState(cur.params.Seed, width, height)
	if err != nil {
		return err
	}
	next := buildSchedule(cur.params, state)
	s.current.Store(next)

	logrus.WithFields(logrus.Fields{
		"function":     "Initialize",
		"width":        width,
		"height":       height,
		"total_blocks": state.TotalBlocks,
		"active":       next.active,
	}).Info("Stream geometry initialized")
	return nil
}

// Configure replaces the stream parameters wholesale. A seed change
// regenerates the permutation for the current geometry; frames planned
// after the swap follow the new schedule, frames planned before it are
// unaffected.
func (s *Scheduler) Configure(params StreamParameters) error {
	if err := params.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	state := cur.state
	if state != nil && state.Seed != params.Seed {
		next, err := selector.NewState(params.Seed, state.Width, state.Height)
		if err != nil {
			return err
		}
		state = next
	}
	s.current.Store(buildSchedule(params, state))

	logrus.WithFields(logrus.Fields{
		"function": "Configure",
		"seed":     params.Seed,
		"density":  params.BlockDensity,
		"period":   params.TemporalPeriod,
	}).Info("Stream parameters replaced")
	return nil
}

// Parameters returns the parameter set of the current snapshot.
func (s *Scheduler) Parameters() StreamParameters {
	return s.current.Load().params
}

// InstructionsForFrame plans the block perturbations for one frame. The
// result is a pure function of the current snapshot and the frame index:
// planning the same frame twice yields identical instructions. Before
// Initialize the plan is empty, not an error.
func (s *Scheduler) InstructionsForFrame(frameIndex uint32) []Instruction {
	sched := s.current.Load()
	state := sched.state
	if state == nil {
		return nil
	}

	total := uint64(state.TotalBlocks)
	offset := uint64(frameIndex%sched.params.TemporalPeriod) * uint64(sched.active)

	out := make([]Instruction, 0, sched.active)
	for i := uint64(0); i < uint64(sched.active); i++ {
		idx := state.Permutation[(offset+i)%total]
		x, y := state.BlockOrigin(idx)
		out = append(out, Instruction{
			X:            x,
			Y:            y,
			Perturbation: selector.Perturbation(state.Seed, idx, frameIndex),
			FrameIndex:   frameIndex,
		})
	}

	s.framesPlanned.Add(1)
	s.blocksTouched.Add(uint64(len(out)))

	logrus.WithFields(logrus.Fields{
		"function": "InstructionsForFrame",
		"frame":    frameIndex,
		"blocks":   len(out),
	}).Debug("Frame instructions planned")
	return out
}

// Stats is a point-in-time snapshot of scheduling activity.
type Stats struct {
	// FramesPlanned counts InstructionsForFrame calls on an initialized
	// scheduler.
	FramesPlanned uint64

	// BlocksTouched counts instructions issued across all planned frames.
	BlocksTouched uint64

	// TotalBlocks is the size of the current block grid; zero before
	// Initialize.
	TotalBlocks uint32

	// ActivePerFrame is the per-frame block budget of the current schedule.
	ActivePerFrame uint32
}

// Stats returns current scheduling statistics.
func (s *Scheduler) Stats() Stats {
	sched := s.current.Load()
	st := Stats{
		FramesPlanned:  s.framesPlanned.Load(),
		BlocksTouched:  s.blocksTouched.Load(),
		ActivePerFrame: sched.active,
	}
	if sched.state != nil {
		st.TotalBlocks = sched.state.TotalBlocks
	}
	return st
}
