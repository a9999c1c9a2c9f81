package graphcalc

import (
	"github.com/cloudcmds/graphcalc/bytecode"
	"github.com/cloudcmds/graphcalc/vm"
)

// Program is a compiled expression. It is immutable after creation and safe
// for concurrent use.
type Program struct {
	code     *bytecode.Code
	observer vm.Observer
}

// Source returns the expression that was compiled.
func (p *Program) Source() string {
	return p.code.Source()
}

// Variables returns the names of the variables the program reads, in order
// of first use.
func (p *Program) Variables() []string {
	names := make([]string, p.code.NameCount())
	for i := range names {
		names[i] = p.code.NameAt(i)
	}
	return names
}

// Code returns the compiled instructions, for use with the vm, plot and dis
// packages.
func (p *Program) Code() *bytecode.Code {
	return p.code
}

// Eval evaluates the program with x bound. Division by zero and domain
// errors produce infinities and NaN, not errors. Reading any variable other
// than x fails with *errz.UnboundVariableError.
func (p *Program) Eval(x float64) (float64, error) {
	return p.EvalWith(vm.X(x))
}

// EvalWith evaluates the program against arbitrary bindings.
func (p *Program) EvalWith(bindings vm.Bindings) (float64, error) {
	if p.observer != nil {
		return vm.New(vm.WithObserver(p.observer)).Eval(p.code, bindings)
	}
	return vm.Eval(p.code, bindings)
}
