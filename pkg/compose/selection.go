package compose

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrSelectionOutOfRange = errors.New("selection out of range")
	ErrSelectionInverted   = errors.New("selection start after end")
)

// Selection is a cursor (Start == End) or highlighted span, in characters.
type Selection struct {
	Start int
	End   int
}

// Cursor returns a collapsed selection at offset.
func Cursor(offset int) Selection {
	return Selection{Start: offset, End: offset}
}

// Collapsed reports whether the selection is a plain cursor.
func (s Selection) Collapsed() bool {
	return s.Start == s.End
}

// Validate checks the selection against text and reports why it does not fit.
func (s Selection) Validate(text string) error {
	n := utf8.RuneCountInString(text)
	if s.Start < 0 || s.End > n {
		return fmt.Errorf("%w: [%d,%d] for length %d", ErrSelectionOutOfRange, s.Start, s.End, n)
	}
	if s.Start > s.End {
		return fmt.Errorf("%w: [%d,%d]", ErrSelectionInverted, s.Start, s.End)
	}
	return nil
}

// clamp forces the selection into [0, n] with Start <= End.
func (s Selection) clamp(n int) Selection {
	s.Start = min(max(s.Start, 0), n)
	s.End = min(max(s.End, 0), n)
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	return s
}
