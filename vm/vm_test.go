package vm

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cloudcmds/graphcalc/bytecode"
	"github.com/cloudcmds/graphcalc/compiler"
	"github.com/cloudcmds/graphcalc/errz"
	"github.com/cloudcmds/graphcalc/op"
	"github.com/stretchr/testify/require"
)

func compile(t testing.TB, source string) *bytecode.Code {
	t.Helper()
	code, err := compiler.Compile(source)
	require.Nil(t, err)
	return code
}

func TestEval(t *testing.T) {
	tests := []struct {
		input    string
		x        float64
		expected float64
	}{
		{"2+3*4", 0, 14},
		{"2^3^2", 0, 512},
		{"2-3-1", 0, -2},
		{"2x", 5, 10},
		{"2(3+1)", 7, 8},
		{"-3^2", 0, -9},
		{"(-3)^2", 0, 9},
		{"2^-3", 0, 0.125},
		{"--3", 0, 3},
		{"-x*2", 3, -6},
		{"x^2 - 2x + 1", 3, 4},
		{"sqrt(16)", 0, 4},
		{"8/2/2", 0, 2},
		{"(x+1)(x-1)", 3, 8},
		{"sin x^2", 0, 0},
	}
	for _, tt := range tests {
		result, err := Eval(compile(t, tt.input), X(tt.x))
		require.Nil(t, err, "input: %q", tt.input)
		require.Equal(t, tt.expected, result, "input: %q", tt.input)
	}
}

func TestEvalNonFinite(t *testing.T) {
	result, err := Eval(compile(t, "1/x"), X(0))
	require.Nil(t, err)
	require.True(t, math.IsInf(result, 1))

	result, err = Eval(compile(t, "log(x)"), X(-1))
	require.Nil(t, err)
	require.True(t, math.IsNaN(result))

	result, err = Eval(compile(t, "log(x)"), X(0))
	require.Nil(t, err)
	require.True(t, math.IsInf(result, -1))
}

func TestUnboundVariable(t *testing.T) {
	_, err := Eval(compile(t, "x+y"), X(1))
	var unbound *errz.UnboundVariableError
	require.True(t, errors.As(err, &unbound))
	require.Equal(t, "y", unbound.Name)
	require.Equal(t, errz.ErrName, unbound.Kind())
}

func TestVars(t *testing.T) {
	result, err := Eval(compile(t, "a b + c"), Vars{"a": 2, "b": 3, "c": 4})
	require.Nil(t, err)
	require.Equal(t, 10.0, result)

	_, err = Eval(compile(t, "a"), Vars{})
	require.Equal(t, &errz.UnboundVariableError{Name: "a"}, err)
}

func TestX(t *testing.T) {
	v, ok := X(2).Lookup("x")
	require.True(t, ok)
	require.Equal(t, 2.0, v)
	_, ok = X(2).Lookup("y")
	require.False(t, ok)
}

func TestDeterministic(t *testing.T) {
	code := compile(t, "sin(x)/x + x^0.5")
	first, err := Eval(code, X(0.3))
	require.Nil(t, err)
	for i := 0; i < 10; i++ {
		again, err := Eval(code, X(0.3))
		require.Nil(t, err)
		require.Equal(t, math.Float64bits(first), math.Float64bits(again))
	}
}

func TestMalformedPrograms(t *testing.T) {
	tests := []struct {
		name   string
		params bytecode.CodeParams
	}{
		{"empty", bytecode.CodeParams{}},
		{"underflow", bytecode.CodeParams{
			Instructions: []op.Code{op.LoadConst, 0, op.BinaryOp, op.Code(op.Add)},
			Constants:    []float64{1},
		}},
		{"negate empty", bytecode.CodeParams{
			Instructions: []op.Code{op.UnaryNegative},
		}},
		{"call empty", bytecode.CodeParams{
			Instructions: []op.Code{op.Call, 0},
			Functions:    []string{"sin"},
		}},
		{"two values", bytecode.CodeParams{
			Instructions: []op.Code{op.LoadConst, 0, op.LoadConst, 0},
			Constants:    []float64{1},
		}},
		{"missing operand", bytecode.CodeParams{
			Instructions: []op.Code{op.LoadConst},
		}},
		{"bad constant", bytecode.CodeParams{
			Instructions: []op.Code{op.LoadConst, 3},
		}},
		{"unknown function", bytecode.CodeParams{
			Instructions: []op.Code{op.LoadConst, 0, op.Call, 0},
			Constants:    []float64{1},
			Functions:    []string{"cosh"},
		}},
		{"unknown opcode", bytecode.CodeParams{
			Instructions: []op.Code{op.Code(99)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Eval(bytecode.NewCode(tt.params), X(0))
			require.True(t, errors.Is(err, errz.ErrMalformedProgram), "got %v", err)
		})
	}
}

func TestUnderflowReportsOffset(t *testing.T) {
	code := bytecode.NewCode(bytecode.CodeParams{
		Instructions: []op.Code{op.LoadConst, 0, op.BinaryOp, op.Code(op.Add)},
		Constants:    []float64{1},
	})
	_, err := Eval(code, X(0))
	require.EqualError(t, err, "runtime error: malformed program: stack underflow at offset 2")
}

func TestUnderstatedDepthGrowsStack(t *testing.T) {
	code := bytecode.NewCode(bytecode.CodeParams{
		Instructions: []op.Code{op.LoadConst, 0, op.LoadConst, 0, op.BinaryOp, op.Code(op.Add)},
		Constants:    []float64{1},
	})
	m := New()
	result, err := m.Eval(code, X(0))
	require.Nil(t, err)
	require.Equal(t, 2.0, result)
}

func TestDeepProgram(t *testing.T) {
	// Right associativity keeps every operand on the stack.
	source := "1"
	for i := 0; i < 40; i++ {
		source += "^1"
	}
	code := compile(t, source)
	require.Greater(t, code.MaxDepth(), MaxInlineDepth)
	result, err := Eval(code, X(0))
	require.Nil(t, err)
	require.Equal(t, 1.0, result)
}

func TestMachineReuse(t *testing.T) {
	m := New(WithStackSize(4))
	square := compile(t, "x^2")
	sum := compile(t, "x+x+x")
	for i := 0; i < 5; i++ {
		x := float64(i)
		v, err := m.Eval(square, X(x))
		require.Nil(t, err)
		require.Equal(t, x*x, v)
		v, err = m.Eval(sum, X(x))
		require.Nil(t, err)
		require.Equal(t, 3*x, v)
	}
}

func TestConcurrentEval(t *testing.T) {
	code := compile(t, "x^2 + 1")
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				x := float64(g*100 + i)
				v, err := Eval(code, X(x))
				if err != nil {
					errs <- err
					return
				}
				if v != x*x+1 {
					errs <- errors.New("wrong result")
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.Nil(t, err)
	}
}

func BenchmarkEval(b *testing.B) {
	code := compile(b, "sin(x)^2 + cos(x)^2 - 2x/3")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Eval(code, X(float64(i)))
	}
}

func BenchmarkMachine(b *testing.B) {
	code := compile(b, "sin(x)^2 + cos(x)^2 - 2x/3")
	m := New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Eval(code, X(float64(i)))
	}
}
