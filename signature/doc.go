// Package signature decodes and encodes ECMA-335 signature blobs.
//
// A signature blob is a binary payload in the #Blob metadata heap
// describing the type shape of a field, method, property, local
// variable list, type specification or method specification. This
// package turns those bytes into structured values and back.
//
// # Decoding
//
// A Decoder is a single-use cursor over one complete blob. Construct
// one, invoke exactly one of the six decode operations, then discard
// it; a second operation on the same instance returns ErrDecoderUsed.
//
//	dec := signature.NewDecoder(blobBytes)
//	method, err := dec.DecodeMethod()
//
// Decoded trees are immutable and owned by the caller. Tokens inside a
// tree are raw references; resolve them through a typesys.Registry.
//
// # Adversarial input
//
// Every multi-byte read is bounds-checked before access, and nested
// type parses are charged against a fixed depth budget (MaxDepth).
// A failed decode never exposes a partially built value.
//
// # Encoding
//
// The Encode functions emit blob bytes from decoded values and are the
// input primitive for the PE/CIL layout writer.
package signature
