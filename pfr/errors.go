package pfr

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the header and directory parsers.
var (
	ErrHeaderTooShort  = errors.New("pfr: data too small for header")
	ErrNoPhysicalFont  = errors.New("pfr: physical font offset out of range")
	ErrPhysicalFontEnd = errors.New("pfr: physical font end is not after offset")
)

// MagicError reports a header signature mismatch; this package only
// decodes the "PFR1" variant.
type MagicError struct {
	Got string
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("pfr: invalid magic: want %q, got %q", "PFR1", e.Got)
}

// SectionRangeError reports a section offset/size pair that falls outside
// the font's byte range.
type SectionRangeError struct {
	Section string
	Offset, Size, DataLen int
}

func (e *SectionRangeError) Error() string {
	return fmt.Sprintf("pfr: %s section out of range (offset=%d size=%d data_len=%d)",
		e.Section, e.Offset, e.Size, e.DataLen)
}
