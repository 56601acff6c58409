package typesys

import (
	"sync"

	"github.com/wippyai/cil-metadata/token"
)

// SourceKind discriminates where a type entity originated.
type SourceKind int

const (
	// SourceCurrentModule marks types defined in the module under analysis.
	SourceCurrentModule SourceKind = iota
	// SourceModule marks types from an external module row.
	SourceModule
	// SourceModuleRef marks types from a ModuleRef row.
	SourceModuleRef
	// SourceAssemblyRef marks types from an AssemblyRef row.
	SourceAssemblyRef
	// SourceFile marks types from a File row.
	SourceFile
	// SourcePrimitive marks CLR built-in primitives.
	SourcePrimitive
	// SourceUnknown marks types whose origin could not be determined.
	SourceUnknown
)

// TypeSource is a small comparable tag identifying a type's origin.
// External kinds carry the token of the referencing metadata row;
// the token is zero for the tokenless kinds.
type TypeSource struct {
	Kind  SourceKind
	Token token.Token
}

// Tokenless sources.
var (
	CurrentModule = TypeSource{Kind: SourceCurrentModule}
	Primitive     = TypeSource{Kind: SourcePrimitive}
	Unknown       = TypeSource{Kind: SourceUnknown}
)

// SourceRef is an external metadata row a type entity may point back
// to. The registry stores these in a side table keyed by token so that
// entities carry only a TypeSource tag, never a reference into
// assembly-owned data.
type SourceRef interface {
	RefToken() token.Token
	isSourceRef()
}

// ModuleRow is a Module table entry acting as a type source.
type ModuleRow struct {
	Token token.Token
	Name  string
}

// ModuleRefRow is a ModuleRef table entry acting as a type source.
type ModuleRefRow struct {
	Token token.Token
	Name  string
}

// AssemblyRefRow is an AssemblyRef table entry acting as a type source.
type AssemblyRefRow struct {
	Token   token.Token
	Name    string
	Version string
}

// FileRow is a File table entry acting as a type source.
type FileRow struct {
	Token token.Token
	Name  string
}

func (m ModuleRow) RefToken() token.Token      { return m.Token }
func (m ModuleRefRow) RefToken() token.Token   { return m.Token }
func (a AssemblyRefRow) RefToken() token.Token { return a.Token }
func (f FileRow) RefToken() token.Token        { return f.Token }

func (ModuleRow) isSourceRef()      {}
func (ModuleRefRow) isSourceRef()   {}
func (AssemblyRefRow) isSourceRef() {}
func (FileRow) isSourceRef()        {}

// sourceTable tracks registered external references per kind. It is
// the inverse mapping for TypeSource tags.
type sourceTable struct {
	mu           sync.RWMutex
	modules      map[token.Token]ModuleRow
	moduleRefs   map[token.Token]ModuleRefRow
	assemblyRefs map[token.Token]AssemblyRefRow
	files        map[token.Token]FileRow
}

func newSourceTable() *sourceTable {
	return &sourceTable{
		modules:      make(map[token.Token]ModuleRow),
		moduleRefs:   make(map[token.Token]ModuleRefRow),
		assemblyRefs: make(map[token.Token]AssemblyRefRow),
		files:        make(map[token.Token]FileRow),
	}
}

// register stores the reference and returns the tag to look it up with.
// References that are not one of the four external row kinds map to
// Unknown without being stored.
func (s *sourceTable) register(ref SourceRef) TypeSource {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r := ref.(type) {
	case ModuleRow:
		s.modules[r.Token] = r
		return TypeSource{Kind: SourceModule, Token: r.Token}
	case ModuleRefRow:
		s.moduleRefs[r.Token] = r
		return TypeSource{Kind: SourceModuleRef, Token: r.Token}
	case AssemblyRefRow:
		s.assemblyRefs[r.Token] = r
		return TypeSource{Kind: SourceAssemblyRef, Token: r.Token}
	case FileRow:
		s.files[r.Token] = r
		return TypeSource{Kind: SourceFile, Token: r.Token}
	}
	return Unknown
}

// lookup returns the reference a tag was issued for, or nil for
// tokenless tags and unregistered tokens.
func (s *sourceTable) lookup(src TypeSource) SourceRef {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch src.Kind {
	case SourceModule:
		if r, ok := s.modules[src.Token]; ok {
			return r
		}
	case SourceModuleRef:
		if r, ok := s.moduleRefs[src.Token]; ok {
			return r
		}
	case SourceAssemblyRef:
		if r, ok := s.assemblyRefs[src.Token]; ok {
			return r
		}
	case SourceFile:
		if r, ok := s.files[src.Token]; ok {
			return r
		}
	}
	return nil
}
