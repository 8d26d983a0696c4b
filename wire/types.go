package wire

import (
	"github.com/fixwire/fixwire/schema"
)

// ===== FIX WIRE FORMAT TYPES =====

// Delimiter bytes of the tag=value wire format.
const (
	// SOH is the single byte terminating every tag=value pair.
	SOH byte = 0x01
	// EqualSign separates a field's tag number from its value.
	EqualSign byte = '='
)

// Well-known structural tag numbers.
const (
	TagBeginString = 8
	TagBodyLength  = 9
	TagCheckSum    = 10
	TagMsgType     = 35
)

// TrailerLength is the fixed byte length of the trailer: "10=" plus exactly
// three checksum digits plus the final delimiter. The format renders the
// checksum as three decimal digits, so the trailer is anchored at
// len(buf)-TrailerLength. A checksum field of any other width is rejected.
const TrailerLength = 7

// Strategy selects a tokenizer implementation. Both produce byte-identical
// field sequences for well-formed input; the two-pass form is retained for
// oracle comparison and benchmarking.
type Strategy int

const (
	// StrategyOnePass tokenizes with a single scan and a small state machine.
	StrategyOnePass Strategy = iota
	// StrategyTwoPass re-scans from the body start, locating each field's
	// separator and terminator independently.
	StrategyTwoPass
)

func (s Strategy) String() string {
	switch s {
	case StrategyOnePass:
		return "one-pass"
	case StrategyTwoPass:
		return "two-pass"
	default:
		return "unknown"
	}
}

// FieldDescriptor records where a single field lives inside the message
// buffer. It never copies value bytes; all offsets index the owning buffer
// and are invariant once the descriptor is created.
//
// TagStart is the offset of the first digit of the tag number, ValueStart the
// offset just past the equal sign, ValueEnd the offset of the terminating
// delimiter (exclusive end of the value span).
type FieldDescriptor struct {
	Tag        int
	Descriptor *schema.TagDescriptor
	TagStart   int
	ValueStart int
	ValueEnd   int
}

// Value returns the field's value bytes as a subslice of buf, without copying.
func (f FieldDescriptor) Value(buf []byte) []byte {
	return buf[f.ValueStart:f.ValueEnd]
}

// TextDecoder converts value bytes in a configured text encoding to a string.
// The default decoder treats bytes as UTF-8.
type TextDecoder func([]byte) (string, error)

func defaultTextDecoder(b []byte) (string, error) {
	return string(b), nil
}
