package bytecode

import (
	"github.com/cloudcmds/graphcalc/op"
	"github.com/cloudcmds/graphcalc/token"
)

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

func copyFloats(src []float64) []float64 {
	if src == nil {
		return nil
	}
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}

func copyInts(src []int) []int {
	if src == nil {
		return nil
	}
	dst := make([]int, len(src))
	copy(dst, src)
	return dst
}

func copyInstructions(src []op.Code) []op.Code {
	if src == nil {
		return nil
	}
	dst := make([]op.Code, len(src))
	copy(dst, src)
	return dst
}

func copyTokens(src []token.Token) []token.Token {
	if src == nil {
		return nil
	}
	dst := make([]token.Token, len(src))
	copy(dst, src)
	return dst
}
