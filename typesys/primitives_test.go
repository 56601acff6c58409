package typesys

import "testing"

func TestPrimitiveTokensSequential(t *testing.T) {
	for i, kind := range allPrimitives {
		want := uint32(primitiveTokenBase + i + 1)
		if got := kind.Token().Value(); got != want {
			t.Errorf("%s token: got 0x%08X, want 0x%08X", kind.FullName(), got, want)
		}
	}

	last := allPrimitives[len(allPrimitives)-1].Token().Value()
	if last >= FirstSyntheticToken {
		t.Errorf("primitive range end 0x%08X overlaps synthetic range start 0x%08X",
			last, uint32(FirstSyntheticToken))
	}
}

func TestPrimitiveNames(t *testing.T) {
	tests := []struct {
		kind      PrimitiveKind
		namespace string
		fullname  string
	}{
		{PrimI1, "System", "System.SByte"},
		{PrimU8, "System", "System.UInt64"},
		{PrimI, "System", "System.IntPtr"},
		{PrimTypedReference, "System", "System.TypedReference"},
		{PrimVar, "", "<Generic Parameter>"},
		{PrimMVar, "", "<Generic Method Parameter>"},
		{PrimNull, "", "<null>"},
	}

	for _, tt := range tests {
		if got := tt.kind.Namespace(); got != tt.namespace {
			t.Errorf("%v namespace: got %q, want %q", tt.kind, got, tt.namespace)
		}
		if got := tt.kind.FullName(); got != tt.fullname {
			t.Errorf("%v fullname: got %q, want %q", tt.kind, got, tt.fullname)
		}
	}
}

func TestPrimitiveFlavors(t *testing.T) {
	if f := PrimI4.Flavor(); f != FlavorI4 || !f.IsPrimitive() || !f.IsValueType() {
		t.Errorf("I4 flavor: %v", f)
	}
	if f := PrimString.Flavor(); f != FlavorString || !f.IsPrimitive() || f.IsValueType() {
		t.Errorf("String flavor: %v", f)
	}
	if f := PrimVar.Flavor(); f != FlavorGenericParameter {
		t.Errorf("Var flavor: %v", f)
	}
	if f := PrimTypedReference.Flavor(); f != FlavorUnknown {
		t.Errorf("TypedReference flavor: %v", f)
	}
	if f := PrimNull.Flavor(); f != FlavorUnknown {
		t.Errorf("Null flavor: %v", f)
	}
}
