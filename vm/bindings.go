package vm

// Bindings supplies variable values to a running program.
type Bindings interface {
	// Lookup returns the value bound to name and whether it is bound.
	Lookup(name string) (float64, bool)
}

// X binds the single variable "x".
type X float64

func (x X) Lookup(name string) (float64, bool) {
	if name == "x" {
		return float64(x), true
	}
	return 0, false
}

// Vars binds any number of variables by name.
type Vars map[string]float64

func (v Vars) Lookup(name string) (float64, bool) {
	value, ok := v[name]
	return value, ok
}
