package media

import (
	"errors"
	"fmt"

	"github.com/xmedia-go/director/bitstream"
)

// ErrUnexpectedTextOffset means an STXT chunk's leading offset field was not
// the fixed value every known STXT chunk carries.
var ErrUnexpectedTextOffset = errors.New("media: stxt chunk has unexpected offset")

// ErrTextChunkTooShort means an STXT chunk did not even hold its fixed
// 12-byte header.
var ErrTextChunkTooShort = errors.New("media: stxt chunk too short")

const stxtHeaderOffset = 12

// TextChunk is the decoded form of an STXT styled-text member payload: a
// plain-text run plus a separate formatting data section.
type TextChunk struct {
	TextLength int
	DataLength int
	Text       string
	Data       []byte
}

// DecodeTextChunk parses an STXT chunk. Grounded on text.rs's
// TextChunk::read, translated field-for-field.
func DecodeTextChunk(data []byte) (TextChunk, error) {
	if len(data) < stxtHeaderOffset {
		return TextChunk{}, fmt.Errorf("%w: %d bytes", ErrTextChunkTooShort, len(data))
	}

	r := bitstream.New(data)
	offset := int(r.ReadU32())
	if offset != stxtHeaderOffset {
		return TextChunk{}, fmt.Errorf("%w: got %d, want %d", ErrUnexpectedTextOffset, offset, stxtHeaderOffset)
	}

	textLength := int(r.ReadU32())
	dataLength := int(r.ReadU32())

	text := r.ReadBytes(textLength)
	body := r.ReadBytes(dataLength)

	return TextChunk{
		TextLength: textLength,
		DataLength: dataLength,
		Text:       string(text),
		Data:       body,
	}, nil
}

// FormattingRun is one 20-byte styled-text formatting record from an STXT
// chunk's data section.
type FormattingRun struct {
	StartPosition uint32
	Height        uint16
	Ascent        uint16
	FontID        uint16
	Style         uint8
	FontSize      uint16
	ColorR        uint16 // QuickDraw 16-bit red
	ColorG        uint16 // QuickDraw 16-bit green
	ColorB        uint16 // QuickDraw 16-bit blue
}

const formattingRunSize = 20

// ParseFormattingRuns decodes the formatting runs in an STXT chunk's data
// section: a 2-byte run count followed by that many fixed 20-byte records.
// Grounded on text.rs's TextChunk::parse_formatting_runs; a run that would
// overrun the data is silently dropped, matching the original's break.
func (c TextChunk) ParseFormattingRuns() []FormattingRun {
	return parseFormattingRuns(c.Data)
}

func parseFormattingRuns(data []byte) []FormattingRun {
	if len(data) < 2 {
		return nil
	}
	numRuns := int(data[0])<<8 | int(data[1])

	var runs []FormattingRun
	for i := 0; i < numRuns; i++ {
		offset := 2 + i*formattingRunSize
		if offset+formattingRunSize > len(data) {
			break
		}
		r := bitstream.NewAt(data, offset)
		startPosition := r.ReadU32()
		height := r.ReadU16()
		ascent := r.ReadU16()
		fontID := r.ReadU16()
		style := r.ReadU8()
		r.ReadU8() // reserved
		fontSize := r.ReadU16()
		colorR := r.ReadU16()
		colorG := r.ReadU16()
		colorB := r.ReadU16()

		runs = append(runs, FormattingRun{
			StartPosition: startPosition,
			Height:        height,
			Ascent:        ascent,
			FontID:        fontID,
			Style:         style,
			FontSize:      fontSize,
			ColorR:        colorR,
			ColorG:        colorG,
			ColorB:        colorB,
		})
	}
	return runs
}
