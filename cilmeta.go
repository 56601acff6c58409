package cilmeta

import (
	"github.com/wippyai/cil-metadata/signature"
	"github.com/wippyai/cil-metadata/token"
	"github.com/wippyai/cil-metadata/typesys"
)

// LayoutConsumer is implemented by PE/CIL writers that plan output
// file layouts from analyzed type and signature data. The planner
// reads entities and signatures; it never mutates the registry.
type LayoutConsumer interface {
	// PlanType reserves layout space for one type entity and its
	// field signatures, returning the assigned metadata token.
	PlanType(entity *typesys.Type, fields []*signature.FieldSig) (token.Token, error)
	// PlanMethod reserves layout space for one method signature.
	PlanMethod(owner token.Token, sig *signature.MethodSig) (token.Token, error)
	// Finalize computes byte offsets for everything planned so far.
	Finalize() error
}

// ImportTracker is implemented by components that record which
// external sources an assembly depends on. Implementations use the
// registry's source registration the same way type ingestion does.
type ImportTracker interface {
	// TrackSource records a dependency on an external row and
	// returns the tag identifying it.
	TrackSource(ref typesys.SourceRef) typesys.TypeSource
	// Sources returns every tag recorded so far.
	Sources() []typesys.TypeSource
}
