package signature

import (
	"github.com/wippyai/cil-metadata/errors"
	"github.com/wippyai/cil-metadata/signature/internal/blob"
)

// Encode functions emit signature blob bytes from decoded values. They
// are the inverse of the Decoder and feed the PE/CIL writer.

// EncodeMethod encodes a method signature, reconstructing the calling
// convention byte from the flag fields.
func EncodeMethod(m *MethodSig) ([]byte, error) {
	w := blob.NewWriter()
	if err := encodeMethod(m, w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func encodeMethod(m *MethodSig, w *blob.Writer) error {
	conv := ConvDefault
	switch {
	case m.Vararg:
		conv = ConvVararg
	case m.Fastcall:
		conv = ConvFastcall
	case m.Thiscall:
		conv = ConvThiscall
	case m.Stdcall:
		conv = ConvStdcall
	case m.Cdecl:
		conv = ConvCdecl
	}
	if m.GenericParamCount > 0 {
		conv |= ConvGeneric
	}
	if m.HasThis {
		conv |= ConvHasThis
	}
	if m.ExplicitThis {
		conv |= ConvExplicitThis
	}
	w.WriteByte(conv)

	if m.GenericParamCount > 0 {
		if err := w.WriteUint(m.GenericParamCount); err != nil {
			return err
		}
	}

	count := uint32(len(m.Params) + len(m.Varargs))
	if err := w.WriteUint(count); err != nil {
		return err
	}
	if err := encodeParam(m.ReturnType, w); err != nil {
		return err
	}
	for _, p := range m.Params {
		if err := encodeParam(p, w); err != nil {
			return err
		}
	}
	if len(m.Varargs) > 0 {
		w.WriteByte(ElemSentinel)
		for _, p := range m.Varargs {
			if err := encodeParam(p, w); err != nil {
				return err
			}
		}
	}
	return nil
}

// EncodeField encodes a field signature with its FIELD marker.
func EncodeField(f *FieldSig) ([]byte, error) {
	w := blob.NewWriter()
	w.WriteByte(HeadField)
	if err := encodeMods(f.Modifiers, w); err != nil {
		return nil, err
	}
	if err := encodeType(f.Type, w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeProperty encodes a property signature.
func EncodeProperty(p *PropertySig) ([]byte, error) {
	w := blob.NewWriter()
	head := HeadProperty
	if p.HasThis {
		head |= ConvHasThis
	}
	w.WriteByte(head)
	if err := w.WriteUint(uint32(len(p.Params))); err != nil {
		return nil, err
	}
	if err := encodeMods(p.Modifiers, w); err != nil {
		return nil, err
	}
	if err := encodeType(p.Type, w); err != nil {
		return nil, err
	}
	for _, param := range p.Params {
		if err := encodeParam(param, w); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// EncodeLocalVars encodes a local variable signature.
func EncodeLocalVars(lv *LocalVars) ([]byte, error) {
	w := blob.NewWriter()
	w.WriteByte(HeadLocals)
	if err := w.WriteUint(uint32(len(lv.Locals))); err != nil {
		return nil, err
	}
	for _, local := range lv.Locals {
		if local.Type == TypedByRef && len(local.Modifiers) == 0 && !local.Pinned && !local.ByRef {
			w.WriteByte(ElemTypedByRef)
			continue
		}
		if err := encodeMods(local.Modifiers, w); err != nil {
			return nil, err
		}
		if local.Pinned {
			w.WriteByte(ElemPinned)
		}
		if local.ByRef {
			w.WriteByte(ElemByRef)
		}
		if err := encodeType(local.Type, w); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// EncodeTypeSpec encodes a type specification: one bare type.
func EncodeTypeSpec(ts *TypeSpecSig) ([]byte, error) {
	w := blob.NewWriter()
	if err := encodeType(ts.Type, w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeMethodSpec encodes a method specification.
func EncodeMethodSpec(ms *MethodSpecSig) ([]byte, error) {
	w := blob.NewWriter()
	w.WriteByte(HeadMethodSpec)
	if err := w.WriteUint(uint32(len(ms.GenericArgs))); err != nil {
		return nil, err
	}
	for _, arg := range ms.GenericArgs {
		if err := encodeType(arg, w); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func encodeParam(p Param, w *blob.Writer) error {
	if err := encodeMods(p.Modifiers, w); err != nil {
		return err
	}
	if p.ByRef {
		w.WriteByte(ElemByRef)
	}
	return encodeType(p.Type, w)
}

func encodeMods(mods []CustomModifier, w *blob.Writer) error {
	for _, m := range mods {
		if m.Required {
			w.WriteByte(ElemCModReqd)
		} else {
			w.WriteByte(ElemCModOpt)
		}
		if err := w.WriteToken(m.Type); err != nil {
			return err
		}
	}
	return nil
}

func encodeType(t TypeSig, w *blob.Writer) error {
	switch v := t.(type) {
	case PrimSig:
		w.WriteByte(byte(v))
		return nil

	case PtrSig:
		w.WriteByte(ElemPtr)
		if err := encodeMods(v.Modifiers, w); err != nil {
			return err
		}
		return encodeType(v.Elem, w)

	case ByRefSig:
		w.WriteByte(ElemByRef)
		return encodeType(v.Elem, w)

	case PinnedSig:
		w.WriteByte(ElemPinned)
		return encodeType(v.Elem, w)

	case ValueTypeSig:
		w.WriteByte(ElemValueType)
		return w.WriteToken(v.Type)

	case ClassSig:
		w.WriteByte(ElemClass)
		return w.WriteToken(v.Type)

	case TypeVarSig:
		w.WriteByte(ElemVar)
		return w.WriteUint(v.Index)

	case MethodVarSig:
		w.WriteByte(ElemMVar)
		return w.WriteUint(v.Index)

	case ArraySig:
		w.WriteByte(ElemArray)
		if err := encodeType(v.Elem, w); err != nil {
			return err
		}
		if err := w.WriteUint(v.Rank); err != nil {
			return err
		}
		var sizes, lowers []uint32
		for _, d := range v.Dimensions {
			if d.Size != nil {
				sizes = append(sizes, *d.Size)
			}
			if d.LowerBound != nil {
				lowers = append(lowers, *d.LowerBound)
			}
		}
		if err := w.WriteUint(uint32(len(sizes))); err != nil {
			return err
		}
		for _, s := range sizes {
			if err := w.WriteUint(s); err != nil {
				return err
			}
		}
		if err := w.WriteUint(uint32(len(lowers))); err != nil {
			return err
		}
		for _, l := range lowers {
			if err := w.WriteUint(l); err != nil {
				return err
			}
		}
		return nil

	case SzArraySig:
		w.WriteByte(ElemSzArray)
		if err := encodeMods(v.Modifiers, w); err != nil {
			return err
		}
		return encodeType(v.Elem, w)

	case GenericInstSig:
		w.WriteByte(ElemGenericInst)
		if err := encodeType(v.Base, w); err != nil {
			return err
		}
		if err := w.WriteUint(uint32(len(v.Args))); err != nil {
			return err
		}
		for _, arg := range v.Args {
			if err := encodeType(arg, w); err != nil {
				return err
			}
		}
		return nil

	case FnPtrSig:
		w.WriteByte(ElemFnPtr)
		return encodeMethod(v.Method, w)

	case ModReqSig:
		w.WriteByte(ElemCModReqd)
		return encodeMods(v.Modifiers, w)

	case ModOptSig:
		w.WriteByte(ElemCModOpt)
		return encodeMods(v.Modifiers, w)
	}

	return errors.New(errors.PhaseEncode, errors.KindMalformed).
		Value(t).
		Detail("type %T has no blob encoding", t).
		Build()
}
