package blob

import (
	"bytes"
	"errors"
	"testing"

	cilerrors "github.com/wippyai/cil-metadata/errors"
	"github.com/wippyai/cil-metadata/token"
)

func TestReaderReadByte(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(data)

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	if r.HasMore() {
		t.Error("HasMore at end: got true")
	}

	_, err := r.ReadByte()
	var cerr *cilerrors.Error
	if !errors.As(err, &cerr) || cerr.Kind != cilerrors.KindOutOfBounds {
		t.Errorf("expected out_of_bounds, got %v", err)
	}
}

func TestReaderPeekDoesNotAdvance(t *testing.T) {
	r := NewReader([]byte{0x1F, 0x08})

	for i := 0; i < 3; i++ {
		b, err := r.PeekByte()
		if err != nil {
			t.Fatalf("PeekByte: %v", err)
		}
		if b != 0x1F {
			t.Errorf("PeekByte: got 0x%02x, want 0x1F", b)
		}
	}
	if r.Position() != 0 {
		t.Errorf("position after peeks: got %d, want 0", r.Position())
	}

	if err := r.Skip(); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if r.Position() != 1 {
		t.Errorf("position after skip: got %d, want 1", r.Position())
	}
}

func TestReaderReadUint(t *testing.T) {
	tests := []struct {
		encoded []byte
		want    uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x03}, 3},
		{[]byte{0x7F}, 0x7F},
		{[]byte{0x80, 0x80}, 0x80},
		{[]byte{0xAE, 0x57}, 0x2E57},
		{[]byte{0xBF, 0xFF}, 0x3FFF},
		{[]byte{0xC0, 0x00, 0x40, 0x00}, 0x4000},
		{[]byte{0xDF, 0xFF, 0xFF, 0xFF}, 0x1FFFFFFF},
	}

	for _, tt := range tests {
		r := NewReader(tt.encoded)
		got, err := r.ReadUint()
		if err != nil {
			t.Errorf("ReadUint(% x): %v", tt.encoded, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ReadUint(% x): got 0x%X, want 0x%X", tt.encoded, got, tt.want)
		}
		if r.HasMore() {
			t.Errorf("ReadUint(% x): bytes remaining", tt.encoded)
		}
	}
}

func TestReaderReadUintMalformed(t *testing.T) {
	r := NewReader([]byte{0xE0, 0x00, 0x00, 0x00})
	_, err := r.ReadUint()
	var cerr *cilerrors.Error
	if !errors.As(err, &cerr) || cerr.Kind != cilerrors.KindMalformed {
		t.Errorf("expected malformed, got %v", err)
	}
}

func TestReaderReadUintTruncated(t *testing.T) {
	for _, data := range [][]byte{{}, {0x80}, {0xC0, 0x01}, {0xC0, 0x01, 0x02}} {
		r := NewReader(data)
		if _, err := r.ReadUint(); err == nil {
			t.Errorf("ReadUint(% x): expected error", data)
		}
	}
}

func TestReaderReadToken(t *testing.T) {
	tests := []struct {
		encoded []byte
		want    token.Token
	}{
		{[]byte{0x04}, token.New(0x02000001)}, // TypeDef row 1
		{[]byte{0x05}, token.New(0x01000001)}, // TypeRef row 1
		{[]byte{0x06}, token.New(0x1B000001)}, // TypeSpec row 1
		{[]byte{0x42}, token.New(0x1B000010)}, // TypeSpec row 16
		{[]byte{0x49}, token.New(0x01000012)}, // TypeRef row 18
	}

	for _, tt := range tests {
		r := NewReader(tt.encoded)
		got, err := r.ReadToken()
		if err != nil {
			t.Errorf("ReadToken(% x): %v", tt.encoded, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ReadToken(% x): got %s, want %s", tt.encoded, got, tt.want)
		}
	}
}

func TestReaderReadTokenInvalidTag(t *testing.T) {
	// Low two bits 0x3 is not a TypeDefOrRef tag.
	r := NewReader([]byte{0x07})
	if _, err := r.ReadToken(); err == nil {
		t.Error("expected error for coded tag 0x3")
	}
}

func TestWriterRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0x7F, 0x80, 0x2E57, 0x3FFF, 0x4000, 0x123456, 0x1FFFFFFF}

	for _, v := range values {
		w := NewWriter()
		if err := w.WriteUint(v); err != nil {
			t.Fatalf("WriteUint(0x%X): %v", v, err)
		}
		r := NewReader(w.Bytes())
		got, err := r.ReadUint()
		if err != nil {
			t.Fatalf("ReadUint after WriteUint(0x%X): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip 0x%X: got 0x%X", v, got)
		}
	}
}

func TestWriterUintTooLarge(t *testing.T) {
	w := NewWriter()
	if err := w.WriteUint(MaxUint + 1); err == nil {
		t.Error("expected error for value above compressed range")
	}
}

func TestWriterTokenRoundTrip(t *testing.T) {
	tokens := []token.Token{
		token.New(0x02000001),
		token.New(0x01000010),
		token.New(0x1B000005),
	}

	for _, tok := range tokens {
		w := NewWriter()
		if err := w.WriteToken(tok); err != nil {
			t.Fatalf("WriteToken(%s): %v", tok, err)
		}
		r := NewReader(w.Bytes())
		got, err := r.ReadToken()
		if err != nil {
			t.Fatalf("ReadToken after WriteToken(%s): %v", tok, err)
		}
		if got != tok {
			t.Errorf("round trip %s: got %s", tok, got)
		}
	}
}

func TestWriterTokenWrongTable(t *testing.T) {
	w := NewWriter()
	if err := w.WriteToken(token.New(0x06000001)); err == nil {
		t.Error("expected error for non TypeDefOrRef token")
	}
}

func TestWriterKnownEncodings(t *testing.T) {
	w := NewWriter()
	w.WriteByte(0x06)
	if err := w.WriteUint(0x2E57); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x06, 0xAE, 0x57}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("encoded bytes: got % x, want % x", w.Bytes(), want)
	}
}
