package wire

import (
	"errors"
	"strings"
	"testing"
)

func TestMessageError(t *testing.T) {
	tests := []struct {
		name          string
		err           *MessageError
		wantSentinel  error
		containsWords []string
	}{
		{
			name:          "kind and offset",
			err:           newMessageError(ErrMalformedTagNumber, 17),
			wantSentinel:  ErrMalformedTagNumber,
			containsWords: []string{"malformed tag number", "offset 17"},
		},
		{
			name:          "tag detail",
			err:           newTagError(ErrMissingDataTerminator, 96, 120),
			wantSentinel:  ErrMissingDataTerminator,
			containsWords: []string{"tag 96", "offset 120"},
		},
		{
			name:          "expected versus actual",
			err:           newCompareError(ErrChecksumMismatch, 301, 231, 17),
			wantSentinel:  ErrChecksumMismatch,
			containsWords: []string{"expected 231", "got 17"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.wantSentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.wantSentinel)
			}
			msg := tt.err.Error()
			for _, w := range tt.containsWords {
				if !strings.Contains(msg, w) {
					t.Errorf("error %q missing %q", msg, w)
				}
			}
		})
	}
}

func TestMessageError_KindsAreDistinct(t *testing.T) {
	kinds := []error{
		ErrHeaderTagMismatch, ErrLengthTagMismatch, ErrMsgTypeTagMismatch,
		ErrTrailerTagMismatch, ErrLengthMismatch, ErrChecksumMismatch,
		ErrMalformedTagNumber, ErrMalformedInteger, ErrDataLengthOverflow,
		ErrMissingDataTerminator, ErrTagNotFound, ErrTypeMismatch,
		ErrMalformedDate, ErrMalformedValue,
	}
	for i, a := range kinds {
		for j, b := range kinds {
			if (i == j) != errors.Is(newMessageError(a, 0), b) {
				t.Errorf("kind %v matched against %v unexpectedly", a, b)
			}
		}
	}
}
