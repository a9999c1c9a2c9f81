package vm

// Option is a configuration function for a Machine.
type Option func(*Machine)

// WithObserver sets an observer that is called after every instruction.
func WithObserver(observer Observer) Option {
	return func(m *Machine) {
		m.observer = observer
	}
}

// WithStackSize preallocates the operand stack. The stack still grows to
// fit deeper programs.
func WithStackSize(size int) Option {
	return func(m *Machine) {
		if size > len(m.stack) {
			m.stack = make([]float64, size)
		}
	}
}
