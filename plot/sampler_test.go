package plot

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/cloudcmds/graphcalc/bytecode"
	"github.com/cloudcmds/graphcalc/compiler"
	"github.com/cloudcmds/graphcalc/errz"
	"github.com/cloudcmds/graphcalc/op"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, source string) *bytecode.Code {
	t.Helper()
	code, err := compiler.Compile(source)
	require.Nil(t, err)
	return code
}

func TestCurveBreaksAtDiscontinuity(t *testing.T) {
	segments, err := NewSampler().Curve(compile(t, "1/x"), DefaultView(), 400, 200)
	require.Nil(t, err)
	require.Len(t, segments, 2)
	require.Len(t, segments[0].World, 200)
	require.Len(t, segments[1].World, 200)
	require.Equal(t, 0.0, segments[0].Screen[0].X)
	require.Equal(t, 201.0, segments[1].Screen[0].X)
	require.Equal(t, Point{X: -4, Y: -0.25}, segments[0].World[0])
}

func TestCurveCoordinates(t *testing.T) {
	v := DefaultView()
	segments, err := NewSampler().Curve(compile(t, "2x+1"), v, 100, 100)
	require.Nil(t, err)
	require.Len(t, segments, 1)
	seg := segments[0]
	require.Len(t, seg.World, 101)
	for i := range seg.World {
		require.Equal(t, float64(i), seg.Screen[i].X)
		require.InDelta(t, 2*seg.World[i].X+1, seg.World[i].Y, 1e-12)
		require.InDelta(t, v.WorldToScreen(seg.World[i], 100, 100).Y, seg.Screen[i].Y, 1e-9)
	}
}

func TestCurveSkipsNaN(t *testing.T) {
	// sqrt is undefined left of the origin.
	segments, err := NewSampler().Curve(compile(t, "sqrt(x)"), DefaultView(), 100, 100)
	require.Nil(t, err)
	require.Len(t, segments, 1)
	require.Equal(t, 50.0, segments[0].Screen[0].X)
}

func TestParallelMatchesSequential(t *testing.T) {
	code := compile(t, "sin(5x)/x + log(x^2)")
	view := View{Origin: Point{X: 0.3, Y: 1}, Scale: 37}
	sequential, err := NewSampler().Curve(code, view, 1999, 800)
	require.Nil(t, err)
	for _, workers := range []int{0, 2, 3, 8, 64} {
		parallel, err := NewSampler(WithWorkers(workers)).Curve(code, view, 1999, 800)
		require.Nil(t, err)
		require.Equal(t, sequential, parallel, "workers: %d", workers)
	}
}

func TestChunks(t *testing.T) {
	s := NewSampler(WithWorkers(4))
	require.Equal(t, []chunk{{0, 10}}, s.chunks(10))
	chunks := s.chunks(1000)
	require.Len(t, chunks, 4)
	require.Equal(t, 0, chunks[0].lo)
	require.Equal(t, 1000, chunks[3].hi)
	for i := 1; i < len(chunks); i++ {
		require.Equal(t, chunks[i-1].hi, chunks[i].lo)
	}
}

func TestRange(t *testing.T) {
	points, err := NewSampler().Range(compile(t, "x^2"), 0, 1, 3)
	require.Nil(t, err)
	require.Equal(t, []Point{{0, 0}, {0.5, 0.25}, {1, 1}}, points)

	points, err = NewSampler().Range(compile(t, "1/x"), -1, 1, 3)
	require.Nil(t, err)
	require.True(t, math.IsInf(points[1].Y, 1))

	points, err = NewSampler().Range(compile(t, "x"), 7, 9, 1)
	require.Nil(t, err)
	require.Equal(t, []Point{{7, 7}}, points)

	_, err = NewSampler().Range(compile(t, "x"), 0, 1, 0)
	require.Error(t, err)
}

func TestUnboundVariable(t *testing.T) {
	_, err := NewSampler(WithWorkers(4)).Curve(compile(t, "x y"), DefaultView(), 500, 100)
	var unbound *errz.UnboundVariableError
	require.True(t, errors.As(err, &unbound))
	require.Equal(t, "y", unbound.Name)
}

func TestMalformedProgramIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	code := bytecode.NewCode(bytecode.CodeParams{
		Source:       "bad",
		Instructions: []op.Code{op.UnaryNegative},
	})
	_, err := NewSampler(WithLogger(logger)).Range(code, 0, 1, 2)
	require.True(t, errors.Is(err, errz.ErrMalformedProgram))
	require.Contains(t, buf.String(), `"level":"error"`)
	require.Contains(t, buf.String(), `"source":"bad"`)
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := NewSampler(WithLogger(logger)).Range(compile(t, "x"), 0, 1, 10)
	require.Nil(t, err)
	require.Contains(t, buf.String(), `"message":"sampled"`)
	require.Contains(t, buf.String(), `"columns":10`)
}
