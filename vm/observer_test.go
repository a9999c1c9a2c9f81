package vm

import (
	"errors"
	"testing"

	"github.com/cloudcmds/graphcalc/op"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	steps []StepEvent
}

func (r *recorder) OnStep(event StepEvent) bool {
	r.steps = append(r.steps, event)
	return true
}

func TestObserverOnStep(t *testing.T) {
	code := compile(t, "2x+1")
	obs := &recorder{}
	m := New(WithObserver(obs))
	result, err := m.Eval(code, X(3))
	require.Nil(t, err)
	require.Equal(t, 7.0, result)

	require.Len(t, obs.steps, 5)
	require.Equal(t, "LOAD_CONST", obs.steps[0].OpcodeName)
	require.Equal(t, []float64{2}, obs.steps[0].Stack)
	require.Equal(t, op.LoadVar, obs.steps[1].Opcode)
	require.Equal(t, 1, obs.steps[1].Location)
	require.Equal(t, []float64{2, 3}, obs.steps[1].Stack)
	require.Equal(t, "BINARY_OP", obs.steps[2].OpcodeName)
	require.Equal(t, op.Code(op.Multiply), obs.steps[2].Operand)
	require.Equal(t, []float64{6}, obs.steps[2].Stack)
	require.Equal(t, []float64{7}, obs.steps[4].Stack)
	for i, step := range obs.steps {
		require.Equal(t, 2*i, step.IP)
	}
}

func TestObserverStackIsCopy(t *testing.T) {
	obs := &recorder{}
	_, err := New(WithObserver(obs)).Eval(compile(t, "1+2"), X(0))
	require.Nil(t, err)
	require.Equal(t, []float64{1}, obs.steps[0].Stack)
	require.Equal(t, []float64{3}, obs.steps[2].Stack)
}

func TestObserverHalt(t *testing.T) {
	calls := 0
	halt := ObserverFunc(func(StepEvent) bool {
		calls++
		return calls < 2
	})
	_, err := New(WithObserver(halt)).Eval(compile(t, "1+2+3"), X(0))
	require.True(t, errors.Is(err, ErrHalted))
	require.Equal(t, 2, calls)
}
