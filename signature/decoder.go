package signature

import (
	"github.com/wippyai/cil-metadata/errors"
	"github.com/wippyai/cil-metadata/signature/internal/blob"
)

// MaxDepth is the hard cap on type parses within one decode call. It
// bounds both recursion and total work on adversarial blobs.
const MaxDepth = 50

// ErrDecoderUsed is returned when a decode operation is invoked on a
// decoder that already performed one.
var ErrDecoderUsed = errors.Internal(errors.PhaseDecode, "decoder already used; construct a new one per blob")

// Decoder is a single-use cursor over one signature blob. Construct one
// per blob, invoke exactly one decode operation, then discard it.
// A Decoder must not be shared between goroutines.
type Decoder struct {
	r     *blob.Reader
	depth int
	used  bool
}

// NewDecoder creates a Decoder over the given blob bytes.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{r: blob.NewReader(data)}
}

// Remaining returns the number of blob bytes the decoder has not
// consumed. Useful when a signature is embedded in a larger buffer.
func (d *Decoder) Remaining() int {
	return d.r.Remaining()
}

func (d *Decoder) begin() error {
	if d.used {
		return ErrDecoderUsed
	}
	d.used = true
	return nil
}

// DecodeMethod decodes a MethodDefSig, MethodRefSig or
// StandAloneMethodSig (II.23.2.1-3).
func (d *Decoder) DecodeMethod() (*MethodSig, error) {
	if err := d.begin(); err != nil {
		return nil, err
	}
	return d.parseMethod()
}

// DecodeField decodes a FieldSig (II.23.2.4). The blob must begin with
// the FIELD marker byte 0x06.
func (d *Decoder) DecodeField() (*FieldSig, error) {
	if err := d.begin(); err != nil {
		return nil, err
	}

	head, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if head != HeadField {
		return nil, errors.Malformed(errors.PhaseDecode, "field signature start", head)
	}

	mods, err := d.parseCustomMods()
	if err != nil {
		return nil, err
	}
	typ, err := d.parseType()
	if err != nil {
		return nil, err
	}

	return &FieldSig{Modifiers: mods, Type: typ}, nil
}

// DecodeProperty decodes a PropertySig (II.23.2.5). The flags byte must
// carry the PROPERTY bit 0x08; the HASTHIS bit 0x20 is read from the
// same byte.
func (d *Decoder) DecodeProperty() (*PropertySig, error) {
	if err := d.begin(); err != nil {
		return nil, err
	}

	head, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if head&HeadProperty == 0 {
		return nil, errors.Malformed(errors.PhaseDecode, "property signature start", head)
	}
	hasThis := head&ConvHasThis != 0

	paramCount, err := d.r.ReadUint()
	if err != nil {
		return nil, err
	}
	mods, err := d.parseCustomMods()
	if err != nil {
		return nil, err
	}
	typ, err := d.parseType()
	if err != nil {
		return nil, err
	}

	params := make([]Param, 0, paramCount)
	for i := uint32(0); i < paramCount; i++ {
		p, err := d.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}

	return &PropertySig{
		HasThis:   hasThis,
		Modifiers: mods,
		Type:      typ,
		Params:    params,
	}, nil
}

// DecodeLocalVars decodes a LocalVarSig (II.23.2.6). The blob must begin
// with the LOCAL_SIG marker byte 0x07.
func (d *Decoder) DecodeLocalVars() (*LocalVars, error) {
	if err := d.begin(); err != nil {
		return nil, err
	}

	head, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if head != HeadLocals {
		return nil, errors.Malformed(errors.PhaseDecode, "local variable signature start", head)
	}

	count, err := d.r.ReadUint()
	if err != nil {
		return nil, err
	}

	locals := make([]LocalVar, 0, count)
	for i := uint32(0); i < count; i++ {
		local, err := d.parseLocal()
		if err != nil {
			return nil, err
		}
		locals = append(locals, local)
	}

	return &LocalVars{Locals: locals}, nil
}

// DecodeTypeSpec decodes a TypeSpec blob (II.23.2.14): a single type
// with no leading marker.
func (d *Decoder) DecodeTypeSpec() (*TypeSpecSig, error) {
	if err := d.begin(); err != nil {
		return nil, err
	}

	typ, err := d.parseType()
	if err != nil {
		return nil, err
	}
	return &TypeSpecSig{Type: typ}, nil
}

// DecodeMethodSpec decodes a MethodSpec blob (II.23.2.15). The blob
// must begin with the GENERICINST marker byte 0x0A.
func (d *Decoder) DecodeMethodSpec() (*MethodSpecSig, error) {
	if err := d.begin(); err != nil {
		return nil, err
	}

	head, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if head != HeadMethodSpec {
		return nil, errors.Malformed(errors.PhaseDecode, "method spec signature start", head)
	}

	argCount, err := d.r.ReadUint()
	if err != nil {
		return nil, err
	}

	args := make([]TypeSig, 0, argCount)
	for i := uint32(0); i < argCount; i++ {
		arg, err := d.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return &MethodSpecSig{GenericArgs: args}, nil
}

// parseLocal decodes one local variable slot. A lone TYPEDBYREF byte
// consumes the whole slot. Otherwise modifier pairs and the pinned
// marker may interleave in any order before an optional byref marker
// and the base type.
func (d *Decoder) parseLocal() (LocalVar, error) {
	b, err := d.r.PeekByte()
	if err != nil {
		return LocalVar{}, err
	}
	if b == ElemTypedByRef {
		if err := d.r.Skip(); err != nil {
			return LocalVar{}, err
		}
		return LocalVar{Type: TypedByRef}, nil
	}

	var mods []CustomModifier
	var pinned bool

	for d.r.HasMore() {
		b, err := d.r.PeekByte()
		if err != nil {
			return LocalVar{}, err
		}
		switch b {
		case ElemCModReqd, ElemCModOpt:
			required := b == ElemCModReqd
			if err := d.r.Skip(); err != nil {
				return LocalVar{}, err
			}
			tok, err := d.r.ReadToken()
			if err != nil {
				return LocalVar{}, err
			}
			mods = append(mods, CustomModifier{Required: required, Type: tok})
			continue
		case ElemPinned:
			if err := d.r.Skip(); err != nil {
				return LocalVar{}, err
			}
			pinned = true
			continue
		}
		break
	}

	byRef := false
	b, err = d.r.PeekByte()
	if err != nil {
		return LocalVar{}, err
	}
	if b == ElemByRef {
		if err := d.r.Skip(); err != nil {
			return LocalVar{}, err
		}
		byRef = true
	}

	typ, err := d.parseType()
	if err != nil {
		return LocalVar{}, err
	}

	return LocalVar{
		Modifiers: mods,
		ByRef:     byRef,
		Pinned:    pinned,
		Type:      typ,
	}, nil
}

// parseMethod decodes a method signature body starting at the calling
// convention byte. Also used by FNPTR, which embeds a full method
// signature inside a type.
func (d *Decoder) parseMethod() (*MethodSig, error) {
	conv, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}

	m := &MethodSig{
		HasThis:      conv&ConvHasThis != 0,
		ExplicitThis: conv&ConvExplicitThis != 0,
		Default:      conv == ConvDefault,
		Vararg:       conv&ConvVararg != 0,
		Cdecl:        conv&ConvCdecl != 0,
		Stdcall:      conv&ConvStdcall != 0,
		Thiscall:     conv&ConvThiscall != 0,
		Fastcall:     conv&ConvFastcall != 0,
	}

	if conv&ConvGeneric != 0 {
		m.GenericParamCount, err = d.r.ReadUint()
		if err != nil {
			return nil, err
		}
	}

	m.ParamCount, err = d.r.ReadUint()
	if err != nil {
		return nil, err
	}

	m.ReturnType, err = d.parseParam()
	if err != nil {
		return nil, err
	}

	for i := uint32(0); i < m.ParamCount; i++ {
		b, err := d.r.PeekByte()
		if err != nil {
			return nil, err
		}
		if b == ElemSentinel {
			// Declared params end here; the rest are varargs.
			if err := d.r.Skip(); err != nil {
				return nil, err
			}
			break
		}

		p, err := d.parseParam()
		if err != nil {
			return nil, err
		}
		m.Params = append(m.Params, p)
	}

	if m.Vararg && uint32(len(m.Params)) < m.ParamCount {
		for i := uint32(len(m.Params)); i < m.ParamCount; i++ {
			p, err := d.parseParam()
			if err != nil {
				return nil, err
			}
			m.Varargs = append(m.Varargs, p)
		}
	}

	return m, nil
}

// parseParam decodes a parameter or return slot:
// [CustomModifier*] [BYREF?] Type.
func (d *Decoder) parseParam() (Param, error) {
	mods, err := d.parseCustomMods()
	if err != nil {
		return Param{}, err
	}

	byRef := false
	b, err := d.r.PeekByte()
	if err != nil {
		return Param{}, err
	}
	if b == ElemByRef {
		if err := d.r.Skip(); err != nil {
			return Param{}, err
		}
		byRef = true
	}

	typ, err := d.parseType()
	if err != nil {
		return Param{}, err
	}

	return Param{Modifiers: mods, ByRef: byRef, Type: typ}, nil
}

// parseCustomMods consumes modreq/modopt tag-token pairs until a byte
// that is neither, or the end of data. Zero modifiers is a valid
// outcome; the terminating byte is not consumed.
func (d *Decoder) parseCustomMods() ([]CustomModifier, error) {
	var mods []CustomModifier

	for d.r.HasMore() {
		b, err := d.r.PeekByte()
		if err != nil {
			return nil, err
		}

		var required bool
		switch b {
		case ElemCModReqd:
			required = true
		case ElemCModOpt:
			required = false
		default:
			return mods, nil
		}

		if err := d.r.Skip(); err != nil {
			return nil, err
		}
		tok, err := d.r.ReadToken()
		if err != nil {
			return nil, err
		}
		mods = append(mods, CustomModifier{Required: required, Type: tok})
	}

	return mods, nil
}

// parseType decodes one type from the blob, dispatching on the element
// type tag. The depth counter charges every type parse within one
// decode call and is never reset, bounding nesting and total node
// count together.
func (d *Decoder) parseType() (TypeSig, error) {
	d.depth++
	if d.depth >= MaxDepth {
		return nil, errors.RecursionLimit(errors.PhaseDecode, MaxDepth)
	}

	b, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}

	switch b {
	case ElemVoid:
		return Void, nil
	case ElemBoolean:
		return Boolean, nil
	case ElemChar:
		return Char, nil
	case ElemI1:
		return I1, nil
	case ElemU1:
		return U1, nil
	case ElemI2:
		return I2, nil
	case ElemU2:
		return U2, nil
	case ElemI4:
		return I4, nil
	case ElemU4:
		return U4, nil
	case ElemI8:
		return I8, nil
	case ElemU8:
		return U8, nil
	case ElemR4:
		return R4, nil
	case ElemR8:
		return R8, nil
	case ElemString:
		return String, nil
	case ElemObject:
		return Object, nil
	case ElemI:
		return I, nil
	case ElemU:
		return U, nil
	case ElemTypedByRef:
		return TypedByRef, nil

	case ElemPtr:
		mods, err := d.parseCustomMods()
		if err != nil {
			return nil, err
		}
		elem, err := d.parseType()
		if err != nil {
			return nil, err
		}
		return PtrSig{Modifiers: mods, Elem: elem}, nil

	case ElemByRef:
		elem, err := d.parseType()
		if err != nil {
			return nil, err
		}
		return ByRefSig{Elem: elem}, nil

	case ElemPinned:
		elem, err := d.parseType()
		if err != nil {
			return nil, err
		}
		return PinnedSig{Elem: elem}, nil

	case ElemValueType:
		tok, err := d.r.ReadToken()
		if err != nil {
			return nil, err
		}
		return ValueTypeSig{Type: tok}, nil

	case ElemClass:
		tok, err := d.r.ReadToken()
		if err != nil {
			return nil, err
		}
		return ClassSig{Type: tok}, nil

	case ElemVar:
		idx, err := d.r.ReadUint()
		if err != nil {
			return nil, err
		}
		return TypeVarSig{Index: idx}, nil

	case ElemMVar:
		idx, err := d.r.ReadUint()
		if err != nil {
			return nil, err
		}
		return MethodVarSig{Index: idx}, nil

	case ElemArray:
		return d.parseArray()

	case ElemGenericInst:
		next, err := d.r.PeekByte()
		if err != nil {
			return nil, err
		}
		if next != ElemClass && next != ElemValueType {
			return nil, errors.Malformed(errors.PhaseDecode, "generic instantiation base", next)
		}

		base, err := d.parseType()
		if err != nil {
			return nil, err
		}
		argCount, err := d.r.ReadUint()
		if err != nil {
			return nil, err
		}
		args := make([]TypeSig, 0, argCount)
		for i := uint32(0); i < argCount; i++ {
			arg, err := d.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return GenericInstSig{Base: base, Args: args}, nil

	case ElemFnPtr:
		m, err := d.parseMethod()
		if err != nil {
			return nil, err
		}
		return FnPtrSig{Method: m}, nil

	case ElemSzArray:
		mods, err := d.parseCustomMods()
		if err != nil {
			return nil, err
		}
		elem, err := d.parseType()
		if err != nil {
			return nil, err
		}
		return SzArraySig{Modifiers: mods, Elem: elem}, nil

	case ElemCModReqd:
		mods, err := d.parseCustomMods()
		if err != nil {
			return nil, err
		}
		return ModReqSig{Modifiers: mods}, nil

	case ElemCModOpt:
		mods, err := d.parseCustomMods()
		if err != nil {
			return nil, err
		}
		return ModOptSig{Modifiers: mods}, nil

	case ElemInternal:
		return Internal, nil
	case ElemModifier:
		return Modifier, nil
	case ElemSentinel:
		return Sentinel, nil
	}

	return nil, errors.Malformed(errors.PhaseDecode, "element type", b)
}

// parseArray decodes an ARRAY shape: element type, rank, explicit
// sizes, then explicit lower bounds. Lower bounds land only in the
// dimensions that already carry a size; size-only dimensions keep a nil
// lower bound.
func (d *Decoder) parseArray() (TypeSig, error) {
	elem, err := d.parseType()
	if err != nil {
		return nil, err
	}
	rank, err := d.r.ReadUint()
	if err != nil {
		return nil, err
	}

	numSizes, err := d.r.ReadUint()
	if err != nil {
		return nil, err
	}
	dims := make([]ArrayDimension, 0, numSizes)
	for i := uint32(0); i < numSizes; i++ {
		size, err := d.r.ReadUint()
		if err != nil {
			return nil, err
		}
		s := size
		dims = append(dims, ArrayDimension{Size: &s})
	}

	numLoBounds, err := d.r.ReadUint()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < numLoBounds && int(i) < len(dims); i++ {
		lo, err := d.r.ReadUint()
		if err != nil {
			return nil, err
		}
		l := lo
		dims[i].LowerBound = &l
	}

	return ArraySig{Elem: elem, Rank: rank, Dimensions: dims}, nil
}
