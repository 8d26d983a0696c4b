// Package fixwire parses tag-delimited, length-prefixed FIX messages from raw
// byte buffers without copying. Message boundary discovery is the caller's
// job: every buffer handed to Parse must hold exactly one whole message.
package fixwire

import (
	"github.com/rs/zerolog"

	"github.com/fixwire/fixwire/registry"
	"github.com/fixwire/fixwire/wire"
)

// Fixwire provides dictionary-aware FIX parsing: structural validation,
// tokenization and typed field access over a shared tag registry.
//
// The registry is built during New (plus any LoadDictionary calls made before
// parsing begins) and read-only afterward, so one Fixwire instance is safe
// for concurrent Parse calls.
type Fixwire struct {
	registry *registry.Registry
	strategy wire.Strategy
	decode   wire.TextDecoder
	logger   zerolog.Logger
}

// Option configures a Fixwire instance.
type Option func(*Fixwire)

// WithStrategy selects the tokenizer strategy used by Parse. The default is
// the one-pass state machine; the two-pass scanner exists for benchmarking
// and oracle comparison.
func WithStrategy(s wire.Strategy) Option {
	return func(f *Fixwire) { f.strategy = s }
}

// WithTextDecoder sets the decoder applied to Encoded string fields.
func WithTextDecoder(d wire.TextDecoder) Option {
	return func(f *Fixwire) { f.decode = d }
}

// WithLogger sets the diagnostic logger. Events are emitted at parse
// boundaries only, never inside the scan loops; the default logger discards
// everything.
func WithLogger(l zerolog.Logger) Option {
	return func(f *Fixwire) { f.logger = l }
}

// New creates a Fixwire instance with the built-in FIX 4.4 dictionary.
func New(opts ...Option) *Fixwire {
	f := &Fixwire{
		registry: registry.NewRegistry(),
		strategy: wire.StrategyOnePass,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// LoadDictionary loads supplemental tag definitions from a YAML or JSON
// dictionary file or directory. Call before the first Parse; the registry
// must not change once parsing begins.
func (f *Fixwire) LoadDictionary(path string) error {
	return f.registry.LoadDictionary(path)
}

// Parse validates and tokenizes one whole message. The buffer is not copied
// and must stay unmodified for the lifetime of the returned Message.
func (f *Fixwire) Parse(data []byte) (*wire.Message, error) {
	msg := wire.NewMessageWithDecoder(data, f.registry, f.decode)
	if err := msg.Parse(f.strategy); err != nil {
		f.logger.Debug().
			Err(err).
			Int("size", len(data)).
			Stringer("strategy", f.strategy).
			Msg("message rejected")
		return nil, err
	}

	f.logger.Debug().
		Str("msg_type", msg.MsgType()).
		Int("fields", msg.NumFields()).
		Int("size", len(data)).
		Msg("message parsed")
	return msg, nil
}

// ===== REGISTRY ACCESS =====

// Registry returns the shared tag registry.
func (f *Fixwire) Registry() *registry.Registry { return f.registry }
