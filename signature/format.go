package signature

import (
	"fmt"
	"strings"
)

// Format renders a type signature in a C#-like notation for diagnostics
// and the inspector CLI. The output is not a round-trippable encoding.
func Format(t TypeSig) string {
	var b strings.Builder
	formatType(t, &b)
	return b.String()
}

// FormatMethod renders a method signature as "(params) -> return".
func FormatMethod(m *MethodSig) string {
	var b strings.Builder
	if m.HasThis {
		b.WriteString("instance ")
	}
	if m.Vararg {
		b.WriteString("vararg ")
	}
	b.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		formatParam(p, &b)
	}
	if len(m.Varargs) > 0 {
		if len(m.Params) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
		for _, p := range m.Varargs {
			b.WriteString(", ")
			formatParam(p, &b)
		}
	}
	b.WriteString(") -> ")
	formatParam(m.ReturnType, &b)
	return b.String()
}

func formatParam(p Param, b *strings.Builder) {
	if p.ByRef {
		b.WriteString("ref ")
	}
	formatType(p.Type, b)
}

func formatType(t TypeSig, b *strings.Builder) {
	switch v := t.(type) {
	case PrimSig:
		b.WriteString(v.String())
	case ValueTypeSig:
		fmt.Fprintf(b, "valuetype %s", v.Type)
	case ClassSig:
		fmt.Fprintf(b, "class %s", v.Type)
	case PtrSig:
		formatType(v.Elem, b)
		b.WriteByte('*')
	case ByRefSig:
		b.WriteString("ref ")
		formatType(v.Elem, b)
	case PinnedSig:
		b.WriteString("pinned ")
		formatType(v.Elem, b)
	case SzArraySig:
		formatType(v.Elem, b)
		b.WriteString("[]")
	case ArraySig:
		formatType(v.Elem, b)
		b.WriteByte('[')
		for i := uint32(0); i < v.Rank; i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			if int(i) < len(v.Dimensions) && v.Dimensions[i].Size != nil {
				fmt.Fprintf(b, "%d", *v.Dimensions[i].Size)
			}
		}
		b.WriteByte(']')
	case GenericInstSig:
		formatType(v.Base, b)
		b.WriteByte('<')
		for i, arg := range v.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			formatType(arg, b)
		}
		b.WriteByte('>')
	case TypeVarSig:
		fmt.Fprintf(b, "!%d", v.Index)
	case MethodVarSig:
		fmt.Fprintf(b, "!!%d", v.Index)
	case FnPtrSig:
		b.WriteString("fnptr ")
		b.WriteString(FormatMethod(v.Method))
	case ModReqSig:
		fmt.Fprintf(b, "modreq(%d)", len(v.Modifiers))
	case ModOptSig:
		fmt.Fprintf(b, "modopt(%d)", len(v.Modifiers))
	default:
		fmt.Fprintf(b, "%T", t)
	}
}

func (p PrimSig) String() string {
	switch p {
	case Void:
		return "void"
	case Boolean:
		return "bool"
	case Char:
		return "char"
	case I1:
		return "int8"
	case U1:
		return "uint8"
	case I2:
		return "int16"
	case U2:
		return "uint16"
	case I4:
		return "int32"
	case U4:
		return "uint32"
	case I8:
		return "int64"
	case U8:
		return "uint64"
	case R4:
		return "float32"
	case R8:
		return "float64"
	case String:
		return "string"
	case TypedByRef:
		return "typedref"
	case I:
		return "native int"
	case U:
		return "native uint"
	case Object:
		return "object"
	case Internal:
		return "internal"
	case Modifier:
		return "modifier"
	case Sentinel:
		return "sentinel"
	}
	return fmt.Sprintf("prim(0x%02X)", byte(p))
}
