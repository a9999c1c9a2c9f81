package graphcalc

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cloudcmds/graphcalc/errz"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

// MaxSourceLength is the default longest source a Session accepts.
const MaxSourceLength = 4096

// ErrNoProgram is returned when a Session is evaluated before any edit
// compiled successfully.
var ErrNoProgram = errors.New("no program compiled")

// Generation is one successfully compiled edit.
type Generation struct {
	// ID identifies the generation in logs.
	ID uuid.UUID
	// Seq counts successful updates, starting at 1.
	Seq     uint64
	Program *Program
}

// Session tracks a stream of edits to one expression. Each Update compiles
// the new source; on success it replaces the current program, on failure the
// previous program stays current and the error is kept. Readers never see a
// partially built program. Session is safe for concurrent use.
type Session struct {
	opts    []Option
	logger  zerolog.Logger
	maxLen  int
	current atomic.Pointer[Generation]

	mu      sync.Mutex
	seq     uint64
	lastErr error
}

// NewSession returns an empty Session. The options apply to every compile
// and to the session itself.
func NewSession(opts ...Option) *Session {
	o := collectOptions(opts...)
	return &Session{
		opts:   opts,
		logger: o.logger,
		maxLen: o.maxSourceLength,
	}
}

// Update compiles source and, if it compiles, makes it current. The returned
// error is also available from Err until the next Update.
func (s *Session) Update(source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	program, err := s.compile(source)
	if err != nil {
		s.lastErr = err
		event := s.logger.Debug().Err(err).Str("source", source)
		if prev := s.current.Load(); prev != nil {
			event = event.Str("kept", prev.ID.String())
		}
		event.Msg("edit rejected")
		return err
	}

	id, err := uuid.NewV4()
	if err != nil {
		s.logger.Warn().Err(err).Msg("generation id unavailable")
	}
	s.seq++
	gen := &Generation{ID: id, Seq: s.seq, Program: program}
	s.current.Store(gen)
	s.lastErr = nil
	s.logger.Debug().
		Str("generation", id.String()).
		Uint64("seq", gen.Seq).
		Str("source", source).
		Msg("program updated")
	return nil
}

func (s *Session) compile(source string) (*Program, error) {
	if s.maxLen > 0 && len(source) > s.maxLen {
		return nil, &errz.SyntaxError{Reason: errz.TooLong, Pos: s.maxLen, Source: source}
	}
	return Compile(source, s.opts...)
}

// Current returns the latest successful generation, or nil if there is none.
func (s *Session) Current() *Generation {
	return s.current.Load()
}

// Program returns the latest good program, or nil if there is none.
func (s *Session) Program() *Program {
	if gen := s.current.Load(); gen != nil {
		return gen.Program
	}
	return nil
}

// Err returns the error from the most recent Update, or nil if it succeeded.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Eval evaluates the current program at x.
func (s *Session) Eval(x float64) (float64, error) {
	gen := s.current.Load()
	if gen == nil {
		return 0, ErrNoProgram
	}
	y, err := gen.Program.Eval(x)
	if err != nil {
		if errors.Is(err, errz.ErrMalformedProgram) {
			s.logger.Error().Err(err).
				Str("generation", gen.ID.String()).
				Str("source", gen.Program.Source()).
				Msg("malformed program")
		}
		return 0, fmt.Errorf("generation %d: %w", gen.Seq, err)
	}
	return y, nil
}
