package graphcalc

import (
	"github.com/cloudcmds/graphcalc/compiler"
	"github.com/cloudcmds/graphcalc/vm"
	"github.com/rs/zerolog"
)

// Option configures compilation, evaluation or a Session.
type Option func(*options)

type options struct {
	permissiveParens bool
	observer         vm.Observer
	logger           zerolog.Logger
	maxSourceLength  int
}

func collectOptions(opts ...Option) *options {
	o := &options{logger: zerolog.Nop(), maxSourceLength: MaxSourceLength}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) compilerOpts() []compiler.Option {
	var opts []compiler.Option
	if o.permissiveParens {
		opts = append(opts, compiler.WithPermissiveParens())
	}
	return opts
}

// WithPermissiveParens makes unmatched parentheses non-fatal: an unmatched
// ')' closes everything opened before it and an unmatched '(' is ignored.
func WithPermissiveParens() Option {
	return func(o *options) {
		o.permissiveParens = true
	}
}

// WithObserver sets an observer that is called after every instruction a
// Program executes. Programs with an observer allocate a vm.Machine per
// evaluation.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithLogger sets the logger used by a Session. The default discards
// everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxSourceLength sets the longest source, in bytes, a Session accepts.
// Values below 1 remove the limit.
func WithMaxSourceLength(n int) Option {
	return func(o *options) {
		o.maxSourceLength = n
	}
}
