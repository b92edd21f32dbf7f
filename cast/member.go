package cast

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/xmedia-go/director"
)

// castHeaderSize is the leading {typeCode, nameLen} header every CASt chunk
// starts with, before its name bytes and (out of scope) property sheet.
const castHeaderSize = 4

// memberKindFromType maps a CASt chunk's on-disk member-type code to the
// Kind enum. The full type table Director defines is wider than the kinds
// director.MemberKind models (spec.md scopes the data model down to the
// members PfrDecoder/media/arena actually touch); anything outside that set
// falls back to Unknown, except the three externally-backed types (Picture,
// Movie, DigitalVideo) which collapse to XMedia since they share its
// "resolved elsewhere, not by this loader" shape.
func memberKindFromType(t uint16) director.MemberKind {
	switch t {
	case 1:
		return director.MemberBitmap
	case 3:
		return director.MemberField
	case 4:
		return director.MemberPalette
	case 6:
		return director.MemberSound
	case 7:
		return director.MemberButton
	case 11:
		return director.MemberScript
	case 12:
		return director.MemberText
	case 5, 9, 10:
		return director.MemberXMedia
	default:
		return director.MemberUnknown
	}
}

// parseMemberChunk extracts a member's Kind and Name from its raw CASt
// payload. Director stores a much larger property sheet alongside the name
// (bitmap geometry, script text offsets, string tables, ...); decoding that
// is out of scope per spec.md's Non-goals, so only the leading header is
// read here and the full payload is retained unparsed as Member.Record.
func parseMemberChunk(data []byte) (kind director.MemberKind, name string) {
	if len(data) < castHeaderSize {
		return director.MemberUnknown, ""
	}
	typeCode := uint16(data[0])<<8 | uint16(data[1])
	nameLen := int(data[2])<<8 | int(data[3])
	kind = memberKindFromType(typeCode)

	start := castHeaderSize
	end := start + nameLen
	if nameLen > 0 && end <= len(data) {
		name = decodeMacRoman(data[start:end])
	}
	return kind, name
}

// decodeMacRoman decodes a cast member or script name: a legacy Mac-Roman
// byte string, not UTF-8. Falls back to the raw bytes on decode failure
// (charmap.Macintosh.NewDecoder() only fails on malformed input, never on
// valid Mac-Roman, so this is just defense against corrupt data).
func decodeMacRoman(b []byte) string {
	decoded, err := charmap.Macintosh.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}
