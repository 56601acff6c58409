package signature

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/wippyai/cil-metadata/token"
)

func TestEncodeFieldKnownBytes(t *testing.T) {
	f := &FieldSig{
		Modifiers: []CustomModifier{{Required: true, Type: token.New(0x02000001)}},
		Type:      I4,
	}

	got, err := EncodeField(f)
	if err != nil {
		t.Fatalf("EncodeField: %v", err)
	}
	want := []byte{0x06, 0x1F, 0x04, 0x08}
	if !bytes.Equal(got, want) {
		t.Errorf("encoded: got % x, want % x", got, want)
	}
}

func TestEncodeMethodRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
	}{
		{"simple instance method", []byte{0x20, 0x01, 0x08, 0x0E}},
		{"default no params", []byte{0x00, 0x00, 0x01}},
		{"generic method", []byte{0x30, 0x01, 0x01, 0x13, 0x00, 0x13, 0x00}},
		{"byref param", []byte{0x00, 0x01, 0x01, 0x10, 0x08}},
		{"nested generic inst", []byte{0x20, 0x01, 0x01, 0x01, 0x15, 0x12, 0x04, 0x01, 0x1D, 0x0E}},
		{"vararg with sentinel", []byte{0x05, 0x03, 0x01, 0x08, 0x41, 0x0E, 0x0E}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := NewDecoder(tt.blob).DecodeMethod()
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			encoded, err := EncodeMethod(decoded)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			again, err := NewDecoder(encoded).DecodeMethod()
			if err != nil {
				t.Fatalf("re-decode: %v", err)
			}
			if !reflect.DeepEqual(decoded, again) {
				t.Errorf("round trip changed the signature:\nfirst:  %+v\nsecond: %+v", decoded, again)
			}
		})
	}
}

func TestEncodeFieldRoundTrip(t *testing.T) {
	blob := []byte{0x06, 0x1F, 0x04, 0x20, 0x05, 0x1D, 0x08}

	decoded, err := NewDecoder(blob).DecodeField()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	encoded, err := EncodeField(decoded)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, blob) {
		t.Errorf("encoded: got % x, want % x", encoded, blob)
	}
}

func TestEncodePropertyRoundTrip(t *testing.T) {
	blob := []byte{0x28, 0x01, 0x08, 0x0E}

	decoded, err := NewDecoder(blob).DecodeProperty()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	encoded, err := EncodeProperty(decoded)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, blob) {
		t.Errorf("encoded: got % x, want % x", encoded, blob)
	}
}

func TestEncodeLocalVarsRoundTrip(t *testing.T) {
	blob := []byte{0x07, 0x03, 0x16, 0x45, 0x10, 0x08, 0x1F, 0x04, 0x0E}

	decoded, err := NewDecoder(blob).DecodeLocalVars()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	encoded, err := EncodeLocalVars(decoded)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, blob) {
		t.Errorf("encoded: got % x, want % x", encoded, blob)
	}
}

func TestEncodeTypeSpecRoundTrip(t *testing.T) {
	blobs := [][]byte{
		{0x08},
		{0x15, 0x12, 0x04, 0x02, 0x0E, 0x08},
		{0x14, 0x08, 0x02, 0x02, 0x03, 0x04, 0x02, 0x00, 0x01},
		{0x1D, 0x0F, 0x08},
		{0x1B, 0x00, 0x01, 0x01, 0x08},
	}

	for _, blob := range blobs {
		decoded, err := NewDecoder(blob).DecodeTypeSpec()
		if err != nil {
			t.Fatalf("decode(% x): %v", blob, err)
		}
		encoded, err := EncodeTypeSpec(decoded)
		if err != nil {
			t.Fatalf("encode(% x): %v", blob, err)
		}
		if !bytes.Equal(encoded, blob) {
			t.Errorf("round trip(% x): got % x", blob, encoded)
		}
	}
}

func TestEncodeMethodSpecRoundTrip(t *testing.T) {
	blob := []byte{0x0A, 0x02, 0x0E, 0x1D, 0x08}

	decoded, err := NewDecoder(blob).DecodeMethodSpec()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	encoded, err := EncodeMethodSpec(decoded)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, blob) {
		t.Errorf("encoded: got % x, want % x", encoded, blob)
	}
}
