package compiler

// Assoc is the associativity of a binary operator.
type Assoc uint8

const (
	Left Assoc = iota
	Right
)

func (a Assoc) String() string {
	if a == Right {
		return "right"
	}
	return "left"
}

// OperatorSpec gives the precedence and associativity of a binary operator.
// Higher precedence binds tighter.
type OperatorSpec struct {
	Precedence int
	Assoc      Assoc
}

// negPrecedence is the binding power of the synthetic negation. It sits
// above '*' and '/' and is not above '^', so "-3^2" is -(3^2) while "-x*2"
// is (-x)*2.
const negPrecedence = 3

// LookupOperator returns the precedence and associativity of a binary
// operator symbol.
func LookupOperator(symbol byte) (OperatorSpec, bool) {
	switch symbol {
	case '+', '-':
		return OperatorSpec{Precedence: 1, Assoc: Left}, true
	case '*', '/':
		return OperatorSpec{Precedence: 2, Assoc: Left}, true
	case '^':
		return OperatorSpec{Precedence: 3, Assoc: Right}, true
	default:
		return OperatorSpec{}, false
	}
}

func mustLookupOperator(symbol byte) OperatorSpec {
	spec, ok := LookupOperator(symbol)
	if !ok {
		panic("compiler: unknown operator " + string(symbol))
	}
	return spec
}
