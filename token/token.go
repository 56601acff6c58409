// Package token defines the metadata token used to identify rows in
// ECMA-335 metadata tables.
//
// A token is a 32-bit value: the high byte selects a metadata table and
// the low three bytes hold a 1-based row index. This package treats
// tokens as opaque comparable keys; it does not validate that the table
// byte names a legal table.
package token

import "fmt"

// Token identifies one row in one metadata table.
type Token uint32

// Nil is the zero token. No table row is ever addressed by it.
const Nil Token = 0

// New builds a token from a raw 32-bit value.
func New(value uint32) Token {
	return Token(value)
}

// Value returns the raw 32-bit value.
func (t Token) Value() uint32 {
	return uint32(t)
}

// Table returns the metadata table byte (the high byte).
func (t Token) Table() byte {
	return byte(t >> 24)
}

// Row returns the 1-based row index (the low three bytes).
func (t Token) Row() uint32 {
	return uint32(t) & 0x00FFFFFF
}

// IsNil reports whether the token is the zero token.
func (t Token) IsNil() bool {
	return t == Nil
}

func (t Token) String() string {
	return fmt.Sprintf("0x%08X", uint32(t))
}
