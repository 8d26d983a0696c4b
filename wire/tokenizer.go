package wire

import (
	"github.com/fixwire/fixwire/registry"
	"github.com/fixwire/fixwire/schema"
)

// scanState is the one-pass tokenizer's state.
type scanState int

const (
	stateReadingKey scanState = iota
	stateReadingValue
	stateReadingRawData
)

// Tokenize walks a validated buffer and produces the ordered field list. Both
// strategies scan from the message start up to the trailer key and then
// append the checksum field, so the header fields (8, 9, 35) and the trailer
// (10) stay reachable through tag lookup.
//
// A declared-length data field is consumed as an opaque byte range: delimiter
// or separator bytes inside its payload never start a new field. On error the
// returned slice holds whatever was tokenized so far and must be discarded by
// the caller.
func Tokenize(buf []byte, info ValidationInfo, strategy Strategy, reg *registry.Registry) ([]FieldDescriptor, error) {
	if strategy == StrategyTwoPass {
		return tokenizeTwoPass(buf, info.TrailerStart, reg)
	}
	return tokenizeOnePass(buf, info.TrailerStart, reg)
}

// tokenizeOnePass runs the single-scan state machine. The cached data length
// set by a DataLength field lives only until the next field is emitted; a
// Data field without a preceding declared length falls back to delimiter
// scanning.
func tokenizeOnePass(buf []byte, trailerStart int, reg *registry.Registry) ([]FieldDescriptor, error) {
	fields := make([]FieldDescriptor, 0, 32)
	state := stateReadingKey
	field := FieldDescriptor{TagStart: 0}
	key := 0
	dataLen := -1

	pos := 0
	for pos < trailerStart {
		b := buf[pos]
		switch state {
		case stateReadingKey:
			switch {
			case b == EqualSign:
				if pos == field.TagStart {
					return fields, newMessageError(ErrMalformedTagNumber, pos)
				}
				field.Tag = key
				field.Descriptor = reg.Lookup(key)
				field.ValueStart = pos + 1
				if field.Descriptor.Property == schema.PropertyData && dataLen >= 0 {
					state = stateReadingRawData
				} else {
					state = stateReadingValue
				}
				pos++
			case b >= '0' && b <= '9':
				key = key*10 + int(b-'0')
				pos++
			default:
				return fields, newTagError(ErrMalformedTagNumber, key, pos)
			}

		case stateReadingValue:
			if b == SOH {
				field.ValueEnd = pos
				if field.Descriptor.Property == schema.PropertyDataLength {
					n, err := parseUint(buf, field.ValueStart, field.ValueEnd)
					if err != nil {
						return fields, err
					}
					dataLen = n
				} else {
					dataLen = -1
				}
				fields = append(fields, field)
				field = FieldDescriptor{TagStart: pos + 1}
				key = 0
				state = stateReadingKey
			}
			pos++

		case stateReadingRawData:
			// Consume exactly the declared payload bytes, then require the
			// delimiter. Payload bytes are opaque.
			end := field.ValueStart + dataLen
			if end > trailerStart {
				return fields, newCompareError(ErrDataLengthOverflow, field.ValueStart, trailerStart-field.ValueStart, dataLen)
			}
			if end == trailerStart || buf[end] != SOH {
				return fields, newTagError(ErrMissingDataTerminator, field.Tag, end)
			}
			field.ValueEnd = end
			fields = append(fields, field)
			dataLen = -1
			field = FieldDescriptor{TagStart: end + 1}
			key = 0
			state = stateReadingKey
			pos = end + 1
		}
	}

	// A trailing field without its delimiter is dropped, not emitted.
	fields = append(fields, trailerField(buf, trailerStart, reg))
	return fields, nil
}

// tokenizeTwoPass re-scans the buffer locating each field's separator and
// terminator independently. It must produce byte-identical output to the
// state machine; it is kept as the tokenizer's test oracle.
func tokenizeTwoPass(buf []byte, trailerStart int, reg *registry.Registry) ([]FieldDescriptor, error) {
	fields := make([]FieldDescriptor, 0, 32)
	dataLen := -1

	pos := 0
	for pos < trailerStart {
		tagStart := pos
		key := 0

		// Locate the separator, validating key digits along the way.
		i := pos
		for ; i < trailerStart && buf[i] != EqualSign; i++ {
			b := buf[i]
			if b < '0' || b > '9' {
				return fields, newTagError(ErrMalformedTagNumber, key, i)
			}
			key = key*10 + int(b-'0')
		}
		if i == trailerStart {
			break // partial trailing field, dropped
		}
		if i == tagStart {
			return fields, newMessageError(ErrMalformedTagNumber, i)
		}

		desc := reg.Lookup(key)
		valueStart := i + 1
		if valueStart >= trailerStart {
			break // separator at the body edge, partial field dropped
		}
		var valueEnd int
		if desc.Property == schema.PropertyData && dataLen >= 0 {
			valueEnd = valueStart + dataLen
			if valueEnd > trailerStart {
				return fields, newCompareError(ErrDataLengthOverflow, valueStart, trailerStart-valueStart, dataLen)
			}
			if valueEnd == trailerStart || buf[valueEnd] != SOH {
				return fields, newTagError(ErrMissingDataTerminator, key, valueEnd)
			}
			dataLen = -1
		} else {
			valueEnd = indexOf(buf, valueStart, SOH)
			if valueEnd >= trailerStart {
				break // partial trailing field, dropped
			}
			if desc.Property == schema.PropertyDataLength {
				n, err := parseUint(buf, valueStart, valueEnd)
				if err != nil {
					return fields, err
				}
				dataLen = n
			} else {
				dataLen = -1
			}
		}

		fields = append(fields, FieldDescriptor{
			Tag:        key,
			Descriptor: desc,
			TagStart:   tagStart,
			ValueStart: valueStart,
			ValueEnd:   valueEnd,
		})
		pos = valueEnd + 1
	}

	fields = append(fields, trailerField(buf, trailerStart, reg))
	return fields, nil
}

// trailerField builds the descriptor for the checksum field, whose offsets
// are fixed by the trailer anchor rather than discovered by scanning.
func trailerField(buf []byte, trailerStart int, reg *registry.Registry) FieldDescriptor {
	return FieldDescriptor{
		Tag:        TagCheckSum,
		Descriptor: reg.Lookup(TagCheckSum),
		TagStart:   trailerStart,
		ValueStart: trailerStart + len(trailerPrefix),
		ValueEnd:   len(buf) - 1,
	}
}
