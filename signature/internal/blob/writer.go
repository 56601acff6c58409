package blob

import (
	"github.com/wippyai/cil-metadata/errors"
	"github.com/wippyai/cil-metadata/token"
)

// MaxUint is the largest value representable as a compressed unsigned
// integer (II.23.2: 29 significant bits).
const MaxUint = 0x1FFFFFFF

// Writer accumulates signature blob bytes.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 16)}
}

// Bytes returns the accumulated blob.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) {
	w.buf = append(w.buf, b)
}

// WriteUint appends an ECMA-335 compressed unsigned integer, choosing
// the shortest encoding that fits.
func (w *Writer) WriteUint(v uint32) error {
	switch {
	case v <= 0x7F:
		w.buf = append(w.buf, byte(v))
	case v <= 0x3FFF:
		w.buf = append(w.buf, 0x80|byte(v>>8), byte(v))
	case v <= MaxUint:
		w.buf = append(w.buf, 0xC0|byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	default:
		return errors.New(errors.PhaseEncode, errors.KindMalformed).
			Value(v).
			Detail("value 0x%X exceeds compressed uint range", v).
			Build()
	}
	return nil
}

// WriteToken appends a TypeDefOrRef coded token. Only TypeDef, TypeRef
// and TypeSpec tokens have a coded form.
func (w *Writer) WriteToken(t token.Token) error {
	var tag uint32
	switch t.Table() {
	case 0x02:
		tag = 0x0 // TypeDef
	case 0x01:
		tag = 0x1 // TypeRef
	case 0x1B:
		tag = 0x2 // TypeSpec
	default:
		return errors.New(errors.PhaseEncode, errors.KindMalformed).
			Value(t).
			Detail("token %s is not a TypeDef, TypeRef or TypeSpec", t).
			Build()
	}
	return w.WriteUint(t.Row()<<2 | tag)
}
