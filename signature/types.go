package signature

import (
	"github.com/wippyai/cil-metadata/token"
)

// Element type tag bytes (ECMA-335 II.23.1.16)
const (
	ElemVoid        byte = 0x01
	ElemBoolean     byte = 0x02
	ElemChar        byte = 0x03
	ElemI1          byte = 0x04
	ElemU1          byte = 0x05
	ElemI2          byte = 0x06
	ElemU2          byte = 0x07
	ElemI4          byte = 0x08
	ElemU4          byte = 0x09
	ElemI8          byte = 0x0A
	ElemU8          byte = 0x0B
	ElemR4          byte = 0x0C
	ElemR8          byte = 0x0D
	ElemString      byte = 0x0E
	ElemPtr         byte = 0x0F
	ElemByRef       byte = 0x10
	ElemValueType   byte = 0x11
	ElemClass       byte = 0x12
	ElemVar         byte = 0x13
	ElemArray       byte = 0x14
	ElemGenericInst byte = 0x15
	ElemTypedByRef  byte = 0x16
	ElemI           byte = 0x18
	ElemU           byte = 0x19
	ElemFnPtr       byte = 0x1B
	ElemObject      byte = 0x1C
	ElemSzArray     byte = 0x1D
	ElemMVar        byte = 0x1E
	ElemCModReqd    byte = 0x1F
	ElemCModOpt     byte = 0x20
	ElemInternal    byte = 0x21
	ElemModifier    byte = 0x40
	ElemSentinel    byte = 0x41
	ElemPinned      byte = 0x45
)

// Calling convention byte layout (ECMA-335 II.23.2.1, II.15.3)
const (
	ConvDefault      byte = 0x00
	ConvCdecl        byte = 0x01
	ConvStdcall      byte = 0x02
	ConvThiscall     byte = 0x03
	ConvFastcall     byte = 0x04
	ConvVararg       byte = 0x05
	ConvGeneric      byte = 0x10
	ConvHasThis      byte = 0x20
	ConvExplicitThis byte = 0x40
)

// Leading bytes identifying signature kinds (ECMA-335 II.23.2)
const (
	HeadField      byte = 0x06
	HeadLocals     byte = 0x07
	HeadProperty   byte = 0x08
	HeadMethodSpec byte = 0x0A
)

// TypeSig is the tagged union of decoded type shapes. A decoded tree is
// immutable once built and owned by the caller.
type TypeSig interface {
	isTypeSig()
}

// PrimSig is a payload-free type variant. Its value is the element type
// tag byte it was decoded from.
type PrimSig byte

const (
	Void       PrimSig = PrimSig(ElemVoid)
	Boolean    PrimSig = PrimSig(ElemBoolean)
	Char       PrimSig = PrimSig(ElemChar)
	I1         PrimSig = PrimSig(ElemI1)
	U1         PrimSig = PrimSig(ElemU1)
	I2         PrimSig = PrimSig(ElemI2)
	U2         PrimSig = PrimSig(ElemU2)
	I4         PrimSig = PrimSig(ElemI4)
	U4         PrimSig = PrimSig(ElemU4)
	I8         PrimSig = PrimSig(ElemI8)
	U8         PrimSig = PrimSig(ElemU8)
	R4         PrimSig = PrimSig(ElemR4)
	R8         PrimSig = PrimSig(ElemR8)
	String     PrimSig = PrimSig(ElemString)
	TypedByRef PrimSig = PrimSig(ElemTypedByRef)
	I          PrimSig = PrimSig(ElemI)
	U          PrimSig = PrimSig(ElemU)
	Object     PrimSig = PrimSig(ElemObject)

	// Marker variants that carry no type shape of their own.
	Internal PrimSig = PrimSig(ElemInternal)
	Modifier PrimSig = PrimSig(ElemModifier)
	Sentinel PrimSig = PrimSig(ElemSentinel)
)

func (PrimSig) isTypeSig() {}

// CustomModifier is a modreq/modopt annotation attached to a type.
type CustomModifier struct {
	Required bool
	Type     token.Token
}

// ArrayDimension describes one axis of a multi-dimensional array.
// Size and LowerBound are nil when the blob does not specify them.
type ArrayDimension struct {
	Size       *uint32
	LowerBound *uint32
}

// ValueTypeSig references a value type by token.
type ValueTypeSig struct {
	Type token.Token
}

func (ValueTypeSig) isTypeSig() {}

// ClassSig references a class type by token.
type ClassSig struct {
	Type token.Token
}

func (ClassSig) isTypeSig() {}

// PtrSig is an unmanaged pointer to an element type.
type PtrSig struct {
	Modifiers []CustomModifier
	Elem      TypeSig
}

func (PtrSig) isTypeSig() {}

// ByRefSig is a managed reference to an element type.
type ByRefSig struct {
	Elem TypeSig
}

func (ByRefSig) isTypeSig() {}

// PinnedSig marks an element type as pinned in memory.
type PinnedSig struct {
	Elem TypeSig
}

func (PinnedSig) isTypeSig() {}

// ArraySig is a multi-dimensional array with explicit shape.
type ArraySig struct {
	Elem       TypeSig
	Rank       uint32
	Dimensions []ArrayDimension
}

func (ArraySig) isTypeSig() {}

// SzArraySig is a single-dimensional, zero-based array.
type SzArraySig struct {
	Modifiers []CustomModifier
	Elem      TypeSig
}

func (SzArraySig) isTypeSig() {}

// GenericInstSig is an instantiated generic type.
type GenericInstSig struct {
	Base TypeSig
	Args []TypeSig
}

func (GenericInstSig) isTypeSig() {}

// TypeVarSig is a generic parameter of the enclosing type (VAR).
type TypeVarSig struct {
	Index uint32
}

func (TypeVarSig) isTypeSig() {}

// MethodVarSig is a generic parameter of the enclosing method (MVAR).
type MethodVarSig struct {
	Index uint32
}

func (MethodVarSig) isTypeSig() {}

// FnPtrSig is a function pointer carrying a full method signature.
type FnPtrSig struct {
	Method *MethodSig
}

func (FnPtrSig) isTypeSig() {}

// ModReqSig carries required custom modifiers decoded from a bare
// CMOD_REQD tag.
type ModReqSig struct {
	Modifiers []CustomModifier
}

func (ModReqSig) isTypeSig() {}

// ModOptSig carries optional custom modifiers decoded from a bare
// CMOD_OPT tag.
type ModOptSig struct {
	Modifiers []CustomModifier
}

func (ModOptSig) isTypeSig() {}

// Param is a method parameter or return slot.
type Param struct {
	Modifiers []CustomModifier
	ByRef     bool
	Type      TypeSig
}

// MethodSig is a decoded method signature.
//
// The calling convention flags are independent bit tests against the
// convention byte; several may be true for one signature.
type MethodSig struct {
	HasThis      bool
	ExplicitThis bool
	Default      bool
	Vararg       bool
	Cdecl        bool
	Stdcall      bool
	Thiscall     bool
	Fastcall     bool

	// GenericParamCount is nonzero only when the generic bit is set.
	GenericParamCount uint32

	// ParamCount is the declared count; Params holds the parameters
	// decoded before a sentinel and Varargs the tail after it.
	ParamCount uint32
	ReturnType Param
	Params     []Param
	Varargs    []Param
}

// FieldSig is a decoded field signature.
type FieldSig struct {
	Modifiers []CustomModifier
	Type      TypeSig
}

// PropertySig is a decoded property signature.
type PropertySig struct {
	HasThis   bool
	Modifiers []CustomModifier
	Type      TypeSig
	Params    []Param
}

// LocalVar is one slot of a local variable signature. Pinned and ByRef
// may both be set on the same slot.
type LocalVar struct {
	Modifiers []CustomModifier
	ByRef     bool
	Pinned    bool
	Type      TypeSig
}

// LocalVars is a decoded local variable signature.
type LocalVars struct {
	Locals []LocalVar
}

// TypeSpecSig is a decoded type specification: a single type with no
// leading tag.
type TypeSpecSig struct {
	Type TypeSig
}

// MethodSpecSig is a decoded method specification: the generic
// arguments of a method instantiation.
type MethodSpecSig struct {
	GenericArgs []TypeSig
}
