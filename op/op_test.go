package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo(BinaryOp)
	require.Equal(t, "BINARY_OP", info.Name)
	require.Equal(t, 1, info.OperandCount)
	require.Equal(t, BinaryOp, info.Code)
	require.Equal(t, -1, info.StackEffect)
	require.Equal(t, 2, info.Pops)
}

func TestGetInfoAllOpcodes(t *testing.T) {
	tests := []struct {
		code     Code
		name     string
		operands int
		effect   int
	}{
		{LoadConst, "LOAD_CONST", 1, 1},
		{LoadVar, "LOAD_VAR", 1, 1},
		{BinaryOp, "BINARY_OP", 1, -1},
		{UnaryNegative, "UNARY_NEGATIVE", 0, 0},
		{Call, "CALL", 1, 0},
	}
	for _, tt := range tests {
		info := GetInfo(tt.code)
		require.Equal(t, tt.name, info.Name)
		require.Equal(t, tt.operands, info.OperandCount)
		require.Equal(t, tt.effect, info.StackEffect)
	}
}

func TestGetInfoUnknown(t *testing.T) {
	require.Equal(t, "", GetInfo(Invalid).Name)
	require.Equal(t, "", GetInfo(Code(999)).Name)
}

func TestBinaryOpFor(t *testing.T) {
	for _, sym := range []byte("+-*/^") {
		bop, ok := BinaryOpFor(sym)
		require.True(t, ok)
		require.Equal(t, string(sym), bop.String())
	}
	_, ok := BinaryOpFor('%')
	require.False(t, ok)
	require.Equal(t, "", BinaryOpType(0).String())
}
