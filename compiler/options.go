package compiler

// Option is a configuration function for compilation.
type Option func(*config)

type config struct {
	permissiveParens bool
}

// WithPermissiveParens makes unmatched parentheses non-fatal. An unmatched
// ')' drains the operator stack and an unmatched '(' is dropped.
func WithPermissiveParens() Option {
	return func(c *config) {
		c.permissiveParens = true
	}
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
