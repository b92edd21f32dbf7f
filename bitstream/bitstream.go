// Package bitstream implements a random-access byte and MSB-first bit
// reader over an immutable byte slice.
//
// Byte-aligned reads (ReadU8, ReadU16, ...) always discard any unconsumed
// bits from a prior ReadBits call before reading: mixing bit-level and
// byte-level reads across an unaligned residue silently loses up to 7 bits.
// Decoders that need both must know exactly where alignment is intended.
package bitstream

import "github.com/xmedia-go/director/internal/bitnum"

// Reader is a cursor over a byte slice supporting both byte-aligned and
// bit-level (MSB-first) reads.
type Reader struct {
	data []byte
	pos  int

	bitBuf  uint32
	bitsLeft uint

	savedPos      int
	savedBitBuf   uint32
	savedBitsLeft uint
	haveSaved     bool
}

// New returns a Reader positioned at the start of data.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

// NewAt returns a Reader positioned at the given byte offset. Offsets beyond
// the end of data are clamped to len(data).
func NewAt(data []byte, offset int) *Reader {
	r := &Reader{data: data}
	if offset < 0 {
		offset = 0
	}
	if offset > len(data) {
		offset = len(data)
	}
	r.pos = offset
	return r
}

// Len returns the total number of bytes backing the reader.
func (r *Reader) Len() int { return len(r.data) }

// Pos returns the current byte cursor. While bits are pending in the
// accumulator, Pos still reports the byte *after* the partially consumed
// byte (matching the PFR bit-reader convention that byte position tracks
// the next unread byte).
func (r *Reader) Pos() int { return r.pos }

// SetPos moves the byte cursor directly and discards any pending bits.
// Used by decoders that must reposition to item_start+item_size
// unconditionally (see pfr's extra-item skip discipline).
func (r *Reader) SetPos(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(r.data) {
		pos = len(r.data)
	}
	r.pos = pos
	r.bitBuf = 0
	r.bitsLeft = 0
}

// Remaining returns the number of unread bytes (ignoring pending bits).
func (r *Reader) Remaining() int {
	if r.pos >= len(r.data) {
		return 0
	}
	return len(r.data) - r.pos
}

// AtEOF reports whether the reader has no more bytes or pending bits.
func (r *Reader) AtEOF() bool {
	return r.pos >= len(r.data) && r.bitsLeft == 0
}

// align discards any bits left in the accumulator, forcing the next read to
// start at a byte boundary.
func (r *Reader) align() {
	r.bitBuf = 0
	r.bitsLeft = 0
}

// ReadU8 reads one byte, discarding any pending bit residue first. Reading
// past the end of data yields 0.
func (r *Reader) ReadU8() uint8 {
	r.align()
	if r.pos >= len(r.data) {
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return v
}

// ReadU16 reads a big-endian 16-bit value.
func (r *Reader) ReadU16() uint16 {
	hi := uint16(r.ReadU8())
	lo := uint16(r.ReadU8())
	return hi<<8 | lo
}

// ReadU24 reads a big-endian 24-bit value into the low bits of a uint32.
func (r *Reader) ReadU24() uint32 {
	b0 := uint32(r.ReadU8())
	b1 := uint32(r.ReadU8())
	b2 := uint32(r.ReadU8())
	return b0<<16 | b1<<8 | b2
}

// ReadI24 reads a big-endian 24-bit value and sign-extends it to int32.
func (r *Reader) ReadI24() int32 {
	return bitnum.SignExtend[int32](r.ReadU24(), 24)
}

// ReadU32 reads a big-endian 32-bit value.
func (r *Reader) ReadU32() uint32 {
	hi := uint32(r.ReadU16())
	lo := uint32(r.ReadU16())
	return hi<<16 | lo
}

// ReadI16 reads a big-endian 16-bit value as a signed two's-complement int16.
func (r *Reader) ReadI16() int16 {
	return int16(r.ReadU16())
}

// ReadBytes reads n bytes as a fresh slice, byte-aligning first. At EOF the
// returned slice is shorter than n.
func (r *Reader) ReadBytes(n int) []byte {
	r.align()
	end := r.pos + n
	if end > len(r.data) {
		end = len(r.data)
	}
	if end < r.pos {
		end = r.pos
	}
	out := make([]byte, end-r.pos)
	copy(out, r.data[r.pos:end])
	r.pos = end
	return out
}

// Skip byte-aligns and advances n bytes, clamping at the end of data.
func (r *Reader) Skip(n int) {
	r.align()
	r.pos += n
	if r.pos > len(r.data) {
		r.pos = len(r.data)
	}
	if r.pos < 0 {
		r.pos = 0
	}
}

// ReadBits consumes n bits (1..=32), MSB first, refilling the accumulator
// one byte at a time as needed and allowing reads to cross byte boundaries.
// At EOF, any bits that cannot be supplied read as zero.
func (r *Reader) ReadBits(n uint) uint32 {
	if n == 0 {
		return 0
	}
	var result uint32
	remaining := n
	for remaining > 0 {
		if r.bitsLeft == 0 {
			if r.pos >= len(r.data) {
				return result << remaining
			}
			r.bitBuf = uint32(r.data[r.pos])
			r.pos++
			r.bitsLeft = 8
		}
		take := remaining
		if take > r.bitsLeft {
			take = r.bitsLeft
		}
		shift := r.bitsLeft - take
		mask := uint32(1<<take-1) << shift
		bits := (r.bitBuf & mask) >> shift
		result = result<<take | bits
		r.bitsLeft -= take
		remaining -= take
	}
	return result
}

// ReadBitsSigned reads n bits and sign-extends the two's-complement result.
func (r *Reader) ReadBitsSigned(n uint) int32 {
	return bitnum.SignExtend[int32](r.ReadBits(n), n)
}

// ReadBit reads a single bit as a bool.
func (r *Reader) ReadBit() bool {
	return r.ReadBits(1) != 0
}

// PeekBits reads n bits without advancing the reader: the byte cursor and
// bit accumulator are fully restored afterwards.
func (r *Reader) PeekBits(n uint) uint32 {
	pos, buf, left := r.pos, r.bitBuf, r.bitsLeft
	v := r.ReadBits(n)
	r.pos, r.bitBuf, r.bitsLeft = pos, buf, left
	return v
}

// SavePosition checkpoints the full reader state (byte cursor, bit
// accumulator, bits-left) into a single reentrant slot; a second call
// overwrites the first.
func (r *Reader) SavePosition() {
	r.savedPos = r.pos
	r.savedBitBuf = r.bitBuf
	r.savedBitsLeft = r.bitsLeft
	r.haveSaved = true
}

// RestorePosition restores the state captured by the most recent
// SavePosition call. It is a no-op if nothing was ever saved.
func (r *Reader) RestorePosition() {
	if !r.haveSaved {
		return
	}
	r.pos = r.savedPos
	r.bitBuf = r.savedBitBuf
	r.bitsLeft = r.savedBitsLeft
}
