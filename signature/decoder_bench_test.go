package signature

import (
	"testing"
)

func BenchmarkDecodeMethod(b *testing.B) {
	// instance List<string[]>(ref int32, string)
	blob := []byte{0x20, 0x02, 0x01, 0x15, 0x12, 0x04, 0x01, 0x1D, 0x0E, 0x10, 0x08, 0x0E}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		m, err := NewDecoder(blob).DecodeMethod()
		if err != nil {
			b.Fatal(err)
		}
		_ = m
	}
}

func BenchmarkDecodeField(b *testing.B) {
	blob := []byte{0x06, 0x1F, 0x04, 0x20, 0x05, 0x1D, 0x08}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		f, err := NewDecoder(blob).DecodeField()
		if err != nil {
			b.Fatal(err)
		}
		_ = f
	}
}

func BenchmarkDecodeLocalVars(b *testing.B) {
	blob := []byte{0x07, 0x04, 0x16, 0x45, 0x10, 0x08, 0x1F, 0x04, 0x45, 0x08, 0x0E}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		lv, err := NewDecoder(blob).DecodeLocalVars()
		if err != nil {
			b.Fatal(err)
		}
		_ = lv
	}
}
