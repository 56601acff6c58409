// Package blob implements low-level reads and writes over ECMA-335
// signature blobs: position-tracked byte access and the compressed
// integer and token encodings of II.23.2.
package blob

import (
	"github.com/wippyai/cil-metadata/errors"
	"github.com/wippyai/cil-metadata/token"
)

// Reader is a position-tracking cursor over one signature blob.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over the given blob bytes.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// HasMore reports whether any bytes remain.
func (r *Reader) HasMore() bool {
	return r.pos < len(r.data)
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.OutOfBounds(errors.PhaseDecode, 1, 0)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// PeekByte returns the next byte without advancing the position.
func (r *Reader) PeekByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.OutOfBounds(errors.PhaseDecode, 1, 0)
	}
	return r.data[r.pos], nil
}

// Skip advances the position by one byte.
func (r *Reader) Skip() error {
	if r.pos >= len(r.data) {
		return errors.OutOfBounds(errors.PhaseDecode, 1, 0)
	}
	r.pos++
	return nil
}

// ReadUint reads an ECMA-335 compressed unsigned integer (II.23.2).
//
// Widths are selected by the leading bits of the first byte:
//
//	0xxxxxxx                            1 byte, 0..0x7F
//	10xxxxxx xxxxxxxx                   2 bytes, 0..0x3FFF
//	110xxxxx xxxxxxxx xxxxxxxx xxxxxxxx 4 bytes, 0..0x1FFFFFFF
func (r *Reader) ReadUint() (uint32, error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	if first&0x80 == 0 {
		return uint32(first), nil
	}

	if first&0xC0 == 0x80 {
		second, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		return (uint32(first)&0x3F)<<8 | uint32(second), nil
	}

	if first&0xE0 == 0xC0 {
		rest := make([]byte, 3)
		for i := range rest {
			b, err := r.ReadByte()
			if err != nil {
				return 0, err
			}
			rest[i] = b
		}
		return (uint32(first)&0x1F)<<24 |
			uint32(rest[0])<<16 |
			uint32(rest[1])<<8 |
			uint32(rest[2]), nil
	}

	return 0, errors.Malformed(errors.PhaseDecode, "compressed uint", first)
}

// ReadToken reads a TypeDefOrRef coded token: a compressed uint whose
// low two bits select the table (TypeDef, TypeRef or TypeSpec) and whose
// remaining bits hold the row index.
func (r *Reader) ReadToken() (token.Token, error) {
	coded, err := r.ReadUint()
	if err != nil {
		return token.Nil, err
	}

	var table uint32
	switch coded & 0x3 {
	case 0x0:
		table = 0x02000000 // TypeDef
	case 0x1:
		table = 0x01000000 // TypeRef
	case 0x2:
		table = 0x1B000000 // TypeSpec
	default:
		return token.Nil, errors.New(errors.PhaseDecode, errors.KindMalformed).
			Value(coded).
			Detail("coded token tag 0x3 is not a valid TypeDefOrRef").
			Build()
	}

	return token.New(table + coded>>2), nil
}
