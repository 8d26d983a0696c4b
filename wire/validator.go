package wire

import (
	"bytes"
	"math"
)

// Field-key prefixes of the three structural header fields and the trailer.
var (
	headerPrefix  = []byte("8=")
	lengthPrefix  = []byte("9=")
	msgTypePrefix = []byte("35=")
	trailerPrefix = []byte("10=")
)

// ValidationInfo is the successful result of structural validation: the key
// offsets the tokenizer needs plus the already decoded message type.
type ValidationInfo struct {
	// BodyStart is the offset just past the body length field's delimiter.
	BodyStart int
	// TrailerStart is the offset of the trailer field's key ("10=").
	TrailerStart int
	// BodyLength is the declared body byte count from the 9 field.
	BodyLength int
	// MsgType is the decoded value of the 35 field.
	MsgType string
}

// Validate checks the structural invariants of a raw message buffer: header
// tag, body length field, message type field, trailer position, declared
// length and checksum, in that order, short-circuiting on the first failure.
// No field list is built here; on success the returned offsets drive the
// tokenizer.
func Validate(buf []byte) (ValidationInfo, error) {
	var info ValidationInfo

	// Header tag at offset 0.
	if !hasPrefixAt(buf, 0, headerPrefix) {
		return info, newMessageError(ErrHeaderTagMismatch, 0)
	}

	// Body length field immediately after the header field.
	headerEnd := indexOf(buf, 0, SOH)
	if !hasPrefixAt(buf, headerEnd+1, lengthPrefix) {
		return info, newMessageError(ErrLengthTagMismatch, headerEnd+1)
	}
	lengthValStart := headerEnd + 1 + len(lengthPrefix)
	lengthValEnd := indexOf(buf, lengthValStart, SOH)
	if lengthValEnd >= len(buf) {
		return info, newMessageError(ErrMalformedInteger, lengthValStart)
	}
	declaredLength, err := parseUint(buf, lengthValStart, lengthValEnd)
	if err != nil {
		return info, err
	}
	bodyStart := lengthValEnd + 1

	// Message type field opens the body.
	if !hasPrefixAt(buf, bodyStart, msgTypePrefix) {
		return info, newMessageError(ErrMsgTypeTagMismatch, bodyStart)
	}
	msgTypeStart := bodyStart + len(msgTypePrefix)
	msgTypeEnd := indexOf(buf, msgTypeStart, SOH)
	if msgTypeEnd >= len(buf) {
		return info, newMessageError(ErrMsgTypeTagMismatch, msgTypeStart)
	}

	// Trailer: "10=" plus exactly three checksum digits plus the final
	// delimiter, anchored at the last TrailerLength bytes.
	trailerStart := len(buf) - TrailerLength
	if trailerStart <= 0 || !hasPrefixAt(buf, trailerStart, trailerPrefix) || buf[len(buf)-1] != SOH {
		return info, newMessageError(ErrTrailerTagMismatch, max(trailerStart, 0))
	}
	checksumStart := trailerStart + len(trailerPrefix)
	declaredChecksum, err := parseUint(buf, checksumStart, len(buf)-1)
	if err != nil {
		return info, newMessageError(ErrTrailerTagMismatch, checksumStart)
	}

	// Declared body length must cover exactly the bytes between the body
	// start and the trailer key.
	if declaredLength != trailerStart-bodyStart {
		return info, newCompareError(ErrLengthMismatch, lengthValStart, declaredLength, trailerStart-bodyStart)
	}

	// Checksum over every byte strictly before the trailer key, as an
	// unsigned 0..255 quantity.
	if sum := Checksum(buf[:trailerStart]); sum != declaredChecksum {
		return info, newCompareError(ErrChecksumMismatch, checksumStart, declaredChecksum, sum)
	}

	info.BodyStart = bodyStart
	info.TrailerStart = trailerStart
	info.BodyLength = declaredLength
	info.MsgType = string(buf[msgTypeStart:msgTypeEnd])
	return info, nil
}

// Checksum returns the unsigned sum modulo 256 of b. The accumulator is wider
// than a byte so the result can never surface as a signed artifact.
func Checksum(b []byte) int {
	var sum uint32
	for _, c := range b {
		sum += uint32(c)
	}
	return int(sum & 0xFF)
}

// hasPrefixAt reports whether buf carries prefix at offset off, with bounds
// checking.
func hasPrefixAt(buf []byte, off int, prefix []byte) bool {
	if off < 0 || off+len(prefix) > len(buf) {
		return false
	}
	return bytes.Equal(buf[off:off+len(prefix)], prefix)
}

// indexOf returns the offset of the first occurrence of b at or after pos,
// or len(buf) when absent.
func indexOf(buf []byte, pos int, b byte) int {
	if pos >= len(buf) {
		return len(buf)
	}
	if i := bytes.IndexByte(buf[pos:], b); i >= 0 {
		return pos + i
	}
	return len(buf)
}

// parseUint parses buf[start:end] as a non-negative decimal integer. Any
// non-digit byte, an empty span, or a value that would overflow int is a
// malformed integer.
func parseUint(buf []byte, start, end int) (int, error) {
	if start >= end {
		return 0, newMessageError(ErrMalformedInteger, start)
	}
	const cutoff = math.MaxInt / 10
	n := 0
	for i := start; i < end; i++ {
		b := buf[i]
		if b < '0' || b > '9' {
			return 0, newMessageError(ErrMalformedInteger, i)
		}
		if n > cutoff {
			return 0, newMessageError(ErrMalformedInteger, i)
		}
		n = n*10 + int(b-'0')
		if n < 0 {
			return 0, newMessageError(ErrMalformedInteger, i)
		}
	}
	return n, nil
}
