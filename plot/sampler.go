package plot

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cloudcmds/graphcalc/bytecode"
	"github.com/cloudcmds/graphcalc/errz"
	"github.com/cloudcmds/graphcalc/vm"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// minChunk is the fewest columns handed to one worker.
const minChunk = 64

// Segment is one unbroken run of finite samples, in world and screen
// coordinates. World[i] and Screen[i] describe the same sample.
type Segment struct {
	World  []Point
	Screen []Point
}

// SamplerOption is a configuration function for a Sampler.
type SamplerOption func(*Sampler)

// WithWorkers sets how many goroutines evaluate columns. Values below 1 mean
// sequential sampling.
func WithWorkers(n int) SamplerOption {
	return func(s *Sampler) {
		s.workers = n
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(logger zerolog.Logger) SamplerOption {
	return func(s *Sampler) {
		s.logger = logger
	}
}

// Sampler evaluates a compiled expression across many x values. Each worker
// uses its own vm.Machine, so results do not depend on the worker count.
type Sampler struct {
	workers int
	logger  zerolog.Logger
}

// NewSampler returns a Sampler configured with the given options.
func NewSampler(opts ...SamplerOption) *Sampler {
	s := &Sampler{workers: 1, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Curve samples the expression at every pixel column from 0 to width
// inclusive. A non-finite value ends the current segment.
func (s *Sampler) Curve(code *bytecode.Code, view View, width, height int) ([]Segment, error) {
	columns := width + 1
	xAt := func(i int) float64 {
		return view.ScreenToWorld(Point{X: float64(i)}, width, height).X
	}
	ys, err := s.evaluate(code, columns, xAt)
	if err != nil {
		return nil, err
	}
	var segments []Segment
	open := false
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			open = false
			continue
		}
		if !open {
			segments = append(segments, Segment{})
			open = true
		}
		world := Point{X: xAt(i), Y: y}
		screen := view.WorldToScreen(world, width, height)
		screen.X = float64(i)
		last := &segments[len(segments)-1]
		last.World = append(last.World, world)
		last.Screen = append(last.Screen, screen)
	}
	return segments, nil
}

// Range samples n evenly spaced x values from 'from' to 'to' inclusive.
// Non-finite values are returned as they are.
func (s *Sampler) Range(code *bytecode.Code, from, to float64, n int) ([]Point, error) {
	if n < 1 {
		return nil, fmt.Errorf("sample count must be positive, got %d", n)
	}
	xAt := func(i int) float64 {
		if n == 1 {
			return from
		}
		return from + (to-from)*float64(i)/float64(n-1)
	}
	ys, err := s.evaluate(code, n, xAt)
	if err != nil {
		return nil, err
	}
	points := make([]Point, n)
	for i, y := range ys {
		points[i] = Point{X: xAt(i), Y: y}
	}
	return points, nil
}

func (s *Sampler) evaluate(code *bytecode.Code, count int, xAt func(int) float64) ([]float64, error) {
	start := time.Now()
	ys := make([]float64, count)
	chunks := s.chunks(count)

	var g errgroup.Group
	for _, c := range chunks {
		c := c
		g.Go(func() error {
			m := vm.New()
			for i := c.lo; i < c.hi; i++ {
				y, err := m.Eval(code, vm.X(xAt(i)))
				if err != nil {
					return err
				}
				ys[i] = y
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, errz.ErrMalformedProgram) {
			s.logger.Error().Err(err).Str("source", code.Source()).Msg("malformed program")
		}
		return nil, fmt.Errorf("sample %q: %w", code.Source(), err)
	}
	s.logger.Debug().
		Str("source", code.Source()).
		Int("columns", count).
		Int("workers", len(chunks)).
		Dur("elapsed", time.Since(start)).
		Msg("sampled")
	return ys, nil
}

type chunk struct {
	lo, hi int
}

func (s *Sampler) chunks(count int) []chunk {
	workers := max(s.workers, 1)
	workers = min(workers, max(count/minChunk, 1))
	size := (count + workers - 1) / workers
	var out []chunk
	for lo := 0; lo < count; lo += size {
		out = append(out, chunk{lo: lo, hi: min(lo+size, count)})
	}
	return out
}
