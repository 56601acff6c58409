package typesys

import (
	"sync"

	"github.com/wippyai/cil-metadata/errors"
	"github.com/wippyai/cil-metadata/signature"
	"github.com/wippyai/cil-metadata/token"
)

// Field is one field row attached to a type entity.
type Field struct {
	Name      string
	Flags     uint32
	Signature *signature.FieldSig
}

// Method is one method row attached to a type entity.
type Method struct {
	Name      string
	Flags     uint32
	Signature *signature.MethodSig
}

// Type is a registry-owned type entity unifying TypeDef, TypeRef and
// TypeSpec information under one token. Identity fields are immutable
// after construction; the base slot is set at most once; fields and
// methods are append-only.
type Type struct {
	Token     token.Token
	Namespace string
	Name      string
	Flags     uint32

	flavor   Flavor
	external SourceRef

	mu      sync.RWMutex
	base    *Type
	baseSet bool
	fields  []Field
	methods []Method
}

// NewType constructs a type entity. A nil external reference marks a
// type defined in the current module.
func NewType(tok token.Token, namespace, name string, external SourceRef, flags uint32, flavor Flavor) *Type {
	return &Type{
		Token:     tok,
		Namespace: namespace,
		Name:      name,
		Flags:     flags,
		flavor:    flavor,
		external:  external,
	}
}

// FullName returns namespace.name, or the bare name for types in the
// global namespace.
func (t *Type) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// Flavor returns the entity's structural classification.
func (t *Type) Flavor() Flavor {
	return t.flavor
}

// External returns the external row this type originated from, or nil
// for types defined in the current module.
func (t *Type) External() SourceRef {
	return t.external
}

// SetBase assigns the base type. The slot is write-once; a second call
// fails regardless of the value.
func (t *Type) SetBase(base *Type) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.baseSet {
		return errors.Internal(errors.PhaseRegistry, "base type already set on %s", t.FullName())
	}
	t.base = base
	t.baseSet = true
	return nil
}

// Base returns the base type, or nil if none was assigned.
func (t *Type) Base() *Type {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.base
}

// AddField appends a field row.
func (t *Type) AddField(f Field) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fields = append(t.fields, f)
}

// AddMethod appends a method row.
func (t *Type) AddMethod(m Method) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.methods = append(t.methods, m)
}

// Fields returns a snapshot of the field rows.
func (t *Type) Fields() []Field {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// Methods returns a snapshot of the method rows.
func (t *Type) Methods() []Method {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Method, len(t.methods))
	copy(out, t.methods)
	return out
}
