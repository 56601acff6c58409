package typesys

// Flavor classifies the structural kind of a type entity. It is a pure
// tag; structural payloads (array shape, generic arguments, function
// pointer signatures) live on signature values, not here.
type Flavor int

const (
	FlavorUnknown Flavor = iota

	// Primitives with direct runtime support.
	FlavorVoid
	FlavorBoolean
	FlavorChar
	FlavorI1
	FlavorU1
	FlavorI2
	FlavorU2
	FlavorI4
	FlavorU4
	FlavorI8
	FlavorU8
	FlavorR4
	FlavorR8
	FlavorI
	FlavorU
	FlavorObject
	FlavorString

	// Constructed shapes.
	FlavorArray
	FlavorPointer
	FlavorByRef
	FlavorGenericInstance
	FlavorPinned
	FlavorFnPtr
	FlavorGenericParameter

	// Type categories.
	FlavorClass
	FlavorValueType
	FlavorInterface
)

var flavorNames = map[Flavor]string{
	FlavorUnknown:          "unknown",
	FlavorVoid:             "void",
	FlavorBoolean:          "boolean",
	FlavorChar:             "char",
	FlavorI1:               "i1",
	FlavorU1:               "u1",
	FlavorI2:               "i2",
	FlavorU2:               "u2",
	FlavorI4:               "i4",
	FlavorU4:               "u4",
	FlavorI8:               "i8",
	FlavorU8:               "u8",
	FlavorR4:               "r4",
	FlavorR8:               "r8",
	FlavorI:                "native int",
	FlavorU:                "native uint",
	FlavorObject:           "object",
	FlavorString:           "string",
	FlavorArray:            "array",
	FlavorPointer:          "pointer",
	FlavorByRef:            "byref",
	FlavorGenericInstance:  "generic instance",
	FlavorPinned:           "pinned",
	FlavorFnPtr:            "fnptr",
	FlavorGenericParameter: "generic parameter",
	FlavorClass:            "class",
	FlavorValueType:        "value type",
	FlavorInterface:        "interface",
}

func (f Flavor) String() string {
	if name, ok := flavorNames[f]; ok {
		return name
	}
	return "unknown"
}

// IsPrimitive reports whether the flavor is a built-in runtime type.
func (f Flavor) IsPrimitive() bool {
	return f >= FlavorVoid && f <= FlavorString
}

// IsValueType reports whether instances have value semantics.
func (f Flavor) IsValueType() bool {
	switch f {
	case FlavorValueType, FlavorVoid, FlavorBoolean, FlavorChar,
		FlavorI1, FlavorU1, FlavorI2, FlavorU2, FlavorI4, FlavorU4,
		FlavorI8, FlavorU8, FlavorR4, FlavorR8, FlavorI, FlavorU:
		return true
	}
	return false
}
