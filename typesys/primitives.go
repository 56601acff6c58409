package typesys

import (
	"github.com/wippyai/cil-metadata/token"
)

// PrimitiveKind enumerates the CLR built-in types the registry
// bootstraps at construction.
type PrimitiveKind int

const (
	PrimVoid PrimitiveKind = iota
	PrimBoolean
	PrimChar
	PrimI1
	PrimU1
	PrimI2
	PrimU2
	PrimI4
	PrimU4
	PrimI8
	PrimU8
	PrimR4
	PrimR8
	PrimI
	PrimU
	PrimObject
	PrimString
	PrimTypedReference
	PrimValueType
	PrimVar
	PrimMVar
	PrimNull
)

// Reserved token range for primitives. Synthetic tokens for
// later-created entities start strictly above it.
const (
	primitiveTokenBase = 0xF0000000
	// FirstSyntheticToken is the first token value the registry's
	// counter issues for created types.
	FirstSyntheticToken = 0xF0000020
)

// allPrimitives lists every kind in bootstrap order. Token values are
// primitiveTokenBase + ordinal + 1, so the order is load-bearing.
var allPrimitives = []PrimitiveKind{
	PrimVoid, PrimBoolean, PrimChar,
	PrimI1, PrimU1, PrimI2, PrimU2, PrimI4, PrimU4, PrimI8, PrimU8,
	PrimR4, PrimR8, PrimI, PrimU,
	PrimObject, PrimString, PrimTypedReference, PrimValueType,
	PrimVar, PrimMVar, PrimNull,
}

// numericPrimitives are the kinds whose base type is wired to
// System.ValueType during bootstrap.
var numericPrimitives = []PrimitiveKind{
	PrimVoid, PrimBoolean, PrimChar,
	PrimI1, PrimU1, PrimI2, PrimU2, PrimI4, PrimU4, PrimI8, PrimU8,
	PrimR4, PrimR8, PrimI, PrimU,
}

// Token returns the reserved token assigned to the primitive kind.
func (k PrimitiveKind) Token() token.Token {
	return token.New(uint32(primitiveTokenBase + int(k) + 1))
}

// Namespace returns the primitive's namespace. The generic parameter
// placeholders and null live outside System.
func (k PrimitiveKind) Namespace() string {
	switch k {
	case PrimVar, PrimMVar, PrimNull:
		return ""
	}
	return "System"
}

// Name returns the primitive's simple name.
func (k PrimitiveKind) Name() string {
	switch k {
	case PrimVoid:
		return "Void"
	case PrimBoolean:
		return "Boolean"
	case PrimChar:
		return "Char"
	case PrimI1:
		return "SByte"
	case PrimU1:
		return "Byte"
	case PrimI2:
		return "Int16"
	case PrimU2:
		return "UInt16"
	case PrimI4:
		return "Int32"
	case PrimU4:
		return "UInt32"
	case PrimI8:
		return "Int64"
	case PrimU8:
		return "UInt64"
	case PrimR4:
		return "Single"
	case PrimR8:
		return "Double"
	case PrimI:
		return "IntPtr"
	case PrimU:
		return "UIntPtr"
	case PrimObject:
		return "Object"
	case PrimString:
		return "String"
	case PrimTypedReference:
		return "TypedReference"
	case PrimValueType:
		return "ValueType"
	case PrimVar:
		return "<Generic Parameter>"
	case PrimMVar:
		return "<Generic Method Parameter>"
	case PrimNull:
		return "<null>"
	}
	return ""
}

// FullName returns namespace.name, or the bare name for the kinds with
// no namespace.
func (k PrimitiveKind) FullName() string {
	ns := k.Namespace()
	if ns == "" {
		return k.Name()
	}
	return ns + "." + k.Name()
}

// Flavor returns the classification tag the primitive's registry entry
// carries.
func (k PrimitiveKind) Flavor() Flavor {
	switch k {
	case PrimVoid:
		return FlavorVoid
	case PrimBoolean:
		return FlavorBoolean
	case PrimChar:
		return FlavorChar
	case PrimI1:
		return FlavorI1
	case PrimU1:
		return FlavorU1
	case PrimI2:
		return FlavorI2
	case PrimU2:
		return FlavorU2
	case PrimI4:
		return FlavorI4
	case PrimU4:
		return FlavorU4
	case PrimI8:
		return FlavorI8
	case PrimU8:
		return FlavorU8
	case PrimR4:
		return FlavorR4
	case PrimR8:
		return FlavorR8
	case PrimI:
		return FlavorI
	case PrimU:
		return FlavorU
	case PrimObject:
		return FlavorObject
	case PrimString:
		return FlavorString
	case PrimValueType:
		return FlavorValueType
	case PrimVar, PrimMVar:
		return FlavorGenericParameter
	}
	return FlavorUnknown
}
