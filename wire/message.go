package wire

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fixwire/fixwire/registry"
	"github.com/fixwire/fixwire/schema"
)

// Timestamp layouts. GetDate picks between them purely by the value span's
// byte length.
const (
	dateLayoutSeconds = "20060102-15:04:05"
	dateLayoutMillis  = "20060102-15:04:05.000"
)

// Message owns a raw message buffer plus the field list and tag index built
// by a parse. The buffer is caller-supplied and treated as immutable for the
// Message's lifetime; field descriptors reference byte spans inside it and
// never copy.
//
// A Message under active Parse must not be read concurrently. After Parse
// returns nil, the Message is read-only and accessor calls are safe for
// concurrent callers.
type Message struct {
	buf      []byte
	registry *registry.Registry
	decode   TextDecoder

	fields []FieldDescriptor
	index  map[int]int // tag -> index into fields, last occurrence wins
	info   ValidationInfo
	parsed bool
}

// NewMessage creates an unparsed message over data. The buffer is not copied.
func NewMessage(data []byte, reg *registry.Registry) *Message {
	return &Message{
		buf:      data,
		registry: reg,
		decode:   defaultTextDecoder,
	}
}

// NewMessageWithDecoder creates a message whose Encoded string fields are
// decoded with the given text decoder instead of the UTF-8 default.
func NewMessageWithDecoder(data []byte, reg *registry.Registry, decode TextDecoder) *Message {
	m := NewMessage(data, reg)
	if decode != nil {
		m.decode = decode
	}
	return m
}

// Parse validates the buffer structurally and then tokenizes it with the
// given strategy. Re-invoking discards the previous field list and
// repopulates from scratch. On any error the Message stays unparsed: no
// partial field list is observable through the accessors.
func (m *Message) Parse(strategy Strategy) error {
	m.parsed = false
	m.fields = nil
	m.index = nil
	m.info = ValidationInfo{}

	info, err := Validate(m.buf)
	if err != nil {
		return err
	}

	fields, err := Tokenize(m.buf, info, strategy, m.registry)
	if err != nil {
		return err
	}

	m.info = info
	m.fields = fields
	m.index = make(map[int]int, len(fields))
	for i := range fields {
		m.index[fields[i].Tag] = i
	}
	m.parsed = true
	return nil
}

// Parsed reports whether the last Parse call succeeded.
func (m *Message) Parsed() bool { return m.parsed }

// Raw returns the underlying message buffer.
func (m *Message) Raw() []byte { return m.buf }

// MsgType returns the cached message type string, or "" before a successful
// parse.
func (m *Message) MsgType() string { return m.info.MsgType }

// Info returns the offsets recorded by structural validation.
func (m *Message) Info() ValidationInfo { return m.info }

// Fields returns every field in wire order, including repeated occurrences.
// The returned slice is owned by the Message and must not be modified.
func (m *Message) Fields() []FieldDescriptor { return m.fields }

// NumFields returns the number of tokenized fields.
func (m *Message) NumFields() int { return len(m.fields) }

// Field returns the descriptor for a tag number. When the tag appears more
// than once the last occurrence wins.
func (m *Message) Field(tag int) (FieldDescriptor, bool) {
	if !m.parsed {
		return FieldDescriptor{}, false
	}
	i, ok := m.index[tag]
	if !ok {
		return FieldDescriptor{}, false
	}
	return m.fields[i], true
}

// field is the common lookup behind the typed accessors.
func (m *Message) field(tag int) (FieldDescriptor, error) {
	f, ok := m.Field(tag)
	if !ok {
		return FieldDescriptor{}, newTagError(ErrTagNotFound, tag, 0)
	}
	return f, nil
}

// typeError builds the TypeMismatch error for an accessor.
func typeError(f FieldDescriptor, want schema.FieldType) error {
	return &MessageError{
		Kind:     ErrTypeMismatch,
		Tag:      f.Tag,
		Offset:   f.ValueStart,
		Expected: want,
		Actual:   f.Descriptor.Type,
	}
}

// ===== TYPED ACCESSORS =====

// GetBytes returns a copy of the value span for a tag.
func (m *Message) GetBytes(tag int) ([]byte, error) {
	f, err := m.field(tag)
	if err != nil {
		return nil, err
	}
	v := f.Value(m.buf)
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// GetInt decodes the value of an Int-typed tag as a signed decimal integer.
func (m *Message) GetInt(tag int) (int, error) {
	f, err := m.field(tag)
	if err != nil {
		return 0, err
	}
	if f.Descriptor.Type != schema.FieldTypeInt {
		return 0, typeError(f, schema.FieldTypeInt)
	}

	start, end := f.ValueStart, f.ValueEnd
	neg := false
	if start < end && m.buf[start] == '-' {
		neg = true
		start++
	}
	n, perr := parseUint(m.buf, start, end)
	if perr != nil {
		return 0, perr
	}
	if neg {
		n = -n
	}
	return n, nil
}

// GetFloat decodes the value of a tag as a decimal floating point number.
//
// The dictionary registers price and quantity tags with type Int even though
// their wire values carry decimal points, so GetFloat checks for Int — the
// registered type — rather than Float. This mirrors the original dictionary
// and is deliberate.
func (m *Message) GetFloat(tag int) (float64, error) {
	f, err := m.field(tag)
	if err != nil {
		return 0, err
	}
	if f.Descriptor.Type != schema.FieldTypeInt {
		return 0, typeError(f, schema.FieldTypeInt)
	}

	v, perr := strconv.ParseFloat(string(f.Value(m.buf)), 64)
	if perr != nil {
		return 0, &MessageError{Kind: ErrMalformedValue, Tag: tag, Offset: f.ValueStart, Actual: string(f.Value(m.buf))}
	}
	return v, nil
}

// GetString decodes the value of a String-typed tag. Fields carrying the
// Encoded property go through the message's configured text decoder; all
// others are decoded as UTF-8.
func (m *Message) GetString(tag int) (string, error) {
	f, err := m.field(tag)
	if err != nil {
		return "", err
	}
	if f.Descriptor.Type != schema.FieldTypeString {
		return "", typeError(f, schema.FieldTypeString)
	}

	if f.Descriptor.Property == schema.PropertyEncoded {
		s, derr := m.decode(f.Value(m.buf))
		if derr != nil {
			return "", fmt.Errorf("failed to decode tag %d text: %w", tag, derr)
		}
		return s, nil
	}
	return string(f.Value(m.buf)), nil
}

// GetDate decodes the value of a Date-typed tag. The layout is selected
// purely by span length: 17 bytes for second precision, 21 bytes for
// millisecond precision.
func (m *Message) GetDate(tag int) (time.Time, error) {
	f, err := m.field(tag)
	if err != nil {
		return time.Time{}, err
	}
	if f.Descriptor.Type != schema.FieldTypeDate {
		return time.Time{}, typeError(f, schema.FieldTypeDate)
	}

	v := f.Value(m.buf)
	var layout string
	switch len(v) {
	case len(dateLayoutSeconds):
		layout = dateLayoutSeconds
	case len(dateLayoutMillis):
		layout = dateLayoutMillis
	default:
		return time.Time{}, &MessageError{
			Kind:     ErrMalformedDate,
			Tag:      tag,
			Offset:   f.ValueStart,
			Expected: fmt.Sprintf("%d or %d bytes", len(dateLayoutSeconds), len(dateLayoutMillis)),
			Actual:   len(v),
		}
	}

	t, perr := time.Parse(layout, string(v))
	if perr != nil {
		return time.Time{}, &MessageError{Kind: ErrMalformedDate, Tag: tag, Offset: f.ValueStart, Actual: string(v)}
	}
	return t, nil
}

// GetBool decodes the value of a Boolean-typed tag: Y is true, N is false.
func (m *Message) GetBool(tag int) (bool, error) {
	f, err := m.field(tag)
	if err != nil {
		return false, err
	}
	if f.Descriptor.Type != schema.FieldTypeBoolean {
		return false, typeError(f, schema.FieldTypeBoolean)
	}

	v := f.Value(m.buf)
	if len(v) == 1 {
		switch v[0] {
		case 'Y':
			return true, nil
		case 'N':
			return false, nil
		}
	}
	return false, &MessageError{Kind: ErrMalformedValue, Tag: tag, Offset: f.ValueStart, Expected: "Y or N", Actual: string(v)}
}

// GetChar decodes the value of a Char-typed tag, which must be a single byte.
func (m *Message) GetChar(tag int) (byte, error) {
	f, err := m.field(tag)
	if err != nil {
		return 0, err
	}
	if f.Descriptor.Type != schema.FieldTypeChar {
		return 0, typeError(f, schema.FieldTypeChar)
	}

	v := f.Value(m.buf)
	if len(v) != 1 {
		return 0, &MessageError{Kind: ErrMalformedValue, Tag: tag, Offset: f.ValueStart, Expected: "single byte", Actual: string(v)}
	}
	return v[0], nil
}
