package typesys

import (
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/cil-metadata/errors"
	"github.com/wippyai/cil-metadata/token"
)

// Registry is the long-lived type store for one analyzed assembly. It
// is safe for concurrent readers and writers without caller locking.
//
// Insertion writes the secondary indices before the primary map entry.
// A reader may therefore briefly observe index buckets referencing a
// token the primary map does not hold yet; secondary lookups filter
// through the primary map, so such tokens are simply skipped until the
// insert completes. Callers must not assume name lookups see a type at
// the exact instant its token lookup does.
type Registry struct {
	mu     sync.RWMutex
	types  map[token.Token]*Type
	claims map[token.Token]*Type

	nextToken uint32

	sources *sourceTable

	bySource    *tokenIndex[TypeSource]
	byName      *tokenIndex[string]
	byNamespace *tokenIndex[string]
	byFullname  *tokenIndex[string]
}

// tokenIndex is one multi-value secondary index.
type tokenIndex[K comparable] struct {
	mu      sync.RWMutex
	buckets map[K][]token.Token
}

func newTokenIndex[K comparable]() *tokenIndex[K] {
	return &tokenIndex[K]{buckets: make(map[K][]token.Token)}
}

func (ix *tokenIndex[K]) add(key K, tok token.Token) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.buckets[key] = append(ix.buckets[key], tok)
}

func (ix *tokenIndex[K]) get(key K) []token.Token {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	bucket := ix.buckets[key]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]token.Token, len(bucket))
	copy(out, bucket)
	return out
}

// NewRegistry constructs a registry with all CLR primitives registered
// and their inheritance wired.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		types:       make(map[token.Token]*Type),
		claims:      make(map[token.Token]*Type),
		nextToken:   FirstSyntheticToken,
		sources:     newSourceTable(),
		bySource:    newTokenIndex[TypeSource](),
		byName:      newTokenIndex[string](),
		byNamespace: newTokenIndex[string](),
		byFullname:  newTokenIndex[string](),
	}
	if err := r.initPrimitives(); err != nil {
		return nil, err
	}
	Logger().Debug("type registry initialized",
		zap.Int("primitives", len(allPrimitives)))
	return r, nil
}

// allocToken issues the next synthetic token. The counter is never
// reused; on the (practically unreachable) wrap it restarts above the
// reserved ranges instead of colliding with real metadata tokens.
func (r *Registry) allocToken() token.Token {
	next := atomic.AddUint32(&r.nextToken, 1) - 1
	if next == 0xFFFFFFFF {
		atomic.StoreUint32(&r.nextToken, 0xF1000000)
	}
	return token.New(next)
}

// initPrimitives registers the built-in types at their reserved tokens
// and wires the bootstrap inheritance: every numeric primitive extends
// ValueType, ValueType and String extend Object.
func (r *Registry) initPrimitives() error {
	for _, kind := range allPrimitives {
		entity := NewType(kind.Token(), kind.Namespace(), kind.Name(), nil, 0, kind.Flavor())
		r.registerInternal(entity, Primitive)
	}

	valueType := r.Get(PrimValueType.Token())
	object := r.Get(PrimObject.Token())
	str := r.Get(PrimString.Token())
	if valueType == nil || object == nil || str == nil {
		return errors.Internal(errors.PhaseBootstrap, "primitive missing after registration")
	}

	for _, kind := range numericPrimitives {
		entity := r.Get(kind.Token())
		if entity == nil {
			return errors.Internal(errors.PhaseBootstrap, "primitive %s missing during base wiring", kind.FullName())
		}
		if err := entity.SetBase(valueType); err != nil {
			return err
		}
	}
	if err := valueType.SetBase(object); err != nil {
		return err
	}
	if err := str.SetBase(object); err != nil {
		return err
	}
	return nil
}

// claim atomically reserves a token for an entity about to be
// registered. It returns the entity already registered or claimed
// under the token, and whether the caller won the reservation and must
// complete registration. Exactly one writer wins per token.
func (r *Registry) claim(tok token.Token, entity *Type) (*Type, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.types[tok]; ok {
		return existing, false
	}
	if pending, ok := r.claims[tok]; ok {
		return pending, false
	}
	r.claims[tok] = entity
	return entity, true
}

// registerInternal adds an entity to every index and then to the
// primary map, releasing the caller's claim. Primary last, so Get
// never returns an entity that is still being indexed.
func (r *Registry) registerInternal(entity *Type, source TypeSource) {
	r.bySource.add(source, entity.Token)
	if entity.Namespace != "" {
		r.byNamespace.add(entity.Namespace, entity.Token)
	}
	r.byName.add(entity.Name, entity.Token)
	r.byFullname.add(entity.FullName(), entity.Token)

	r.mu.Lock()
	delete(r.claims, entity.Token)
	r.types[entity.Token] = entity
	r.mu.Unlock()
}

// Get returns the entity registered under the token, or nil.
func (r *Registry) Get(tok token.Token) *Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[tok]
}

// GetPrimitive returns the bootstrapped entity for a primitive kind.
func (r *Registry) GetPrimitive(kind PrimitiveKind) (*Type, error) {
	entity := r.Get(kind.Token())
	if entity == nil {
		return nil, errors.NotFound(errors.PhaseRegistry, "primitive type", kind.Token().String())
	}
	return entity, nil
}

// resolve maps index bucket tokens through the primary map, dropping
// tokens whose insert has not completed.
func (r *Registry) resolve(tokens []token.Token) []*Type {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]*Type, 0, len(tokens))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tok := range tokens {
		if entity, ok := r.types[tok]; ok {
			out = append(out, entity)
		}
	}
	return out
}

// GetByName returns all entities with the given simple name, across
// every namespace and source. Collisions are expected, not errors.
func (r *Registry) GetByName(name string) []*Type {
	return r.resolve(r.byName.get(name))
}

// GetByNamespace returns all entities in the namespace.
func (r *Registry) GetByNamespace(namespace string) []*Type {
	return r.resolve(r.byNamespace.get(namespace))
}

// GetByFullname returns all entities whose namespace.name equals
// fullname. Usually zero or one result.
func (r *Registry) GetByFullname(fullname string) []*Type {
	return r.resolve(r.byFullname.get(fullname))
}

// GetBySourceAndName finds a type from a specific source by exact
// namespace and name. When the source-scoped scan misses it falls back
// to the first fullname match.
func (r *Registry) GetBySourceAndName(source TypeSource, namespace, name string) *Type {
	for _, entity := range r.resolve(r.bySource.get(source)) {
		if entity.Namespace == namespace && entity.Name == name {
			return entity
		}
	}

	fullname := name
	if namespace != "" {
		fullname = namespace + "." + name
	}
	if matches := r.GetByFullname(fullname); len(matches) > 0 {
		return matches[0]
	}
	return nil
}

// Insert registers an entity under its token. If the token is already
// present the call is a silent no-op; the original entity stays. The
// origin is classified from the entity's external reference.
func (r *Registry) Insert(entity *Type) {
	if _, won := r.claim(entity.Token, entity); !won {
		return
	}

	source := CurrentModule
	if ref := entity.External(); ref != nil {
		source = r.RegisterSource(ref)
	}
	r.registerInternal(entity, source)
}

// CreateType allocates a fresh synthetic token and stores a blank
// entity under it. The entity is visible via Get only; callers fill in
// names later and re-register through Insert if index visibility is
// needed. Used for forward-reference placeholders.
func (r *Registry) CreateType() *Type {
	return r.CreateTypeWithFlavor(FlavorUnknown)
}

// CreateTypeWithFlavor is CreateType with an explicit classification.
func (r *Registry) CreateTypeWithFlavor(flavor Flavor) *Type {
	tok := r.allocToken()
	entity := NewType(tok, "", "", nil, 0, flavor)

	r.mu.Lock()
	r.types[tok] = entity
	r.mu.Unlock()

	return entity
}

// GetOrCreate returns the entity registered under tok, or registers a
// new one. The zero token means "allocate a synthetic token". When the
// token already exists the existing entity is returned unchanged and
// the flavor, names and source arguments are ignored; the first writer
// wins.
func (r *Registry) GetOrCreate(tok token.Token, flavor Flavor, namespace, name string, source TypeSource) *Type {
	if tok == token.Nil {
		tok = r.allocToken()
	}
	if existing := r.Get(tok); existing != nil {
		return existing
	}

	entity := NewType(tok, namespace, name, r.SourceReference(source), 0, flavor)
	winner, won := r.claim(tok, entity)
	if !won {
		return winner
	}
	r.registerInternal(entity, source)

	Logger().Debug("type registered",
		zap.Stringer("token", tok),
		zap.String("fullname", entity.FullName()),
		zap.Stringer("flavor", flavor))
	return entity
}

// RegisterSource records an external reference and returns the tag to
// identify it with. The registry keeps the reference in a side table;
// type entities carry only the tag.
func (r *Registry) RegisterSource(ref SourceRef) TypeSource {
	return r.sources.register(ref)
}

// SourceReference returns the external reference a tag was issued for,
// or nil for tokenless tags.
func (r *Registry) SourceReference(source TypeSource) SourceRef {
	return r.sources.lookup(source)
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// All returns a snapshot of every registered type in token order.
func (r *Registry) All() []*Type {
	r.mu.RLock()
	out := make([]*Type, 0, len(r.types))
	for _, entity := range r.types {
		out = append(out, entity)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Token < out[j].Token
	})
	return out
}

// TypesFromSource returns all types registered under one origin tag.
func (r *Registry) TypesFromSource(source TypeSource) []*Type {
	return r.resolve(r.bySource.get(source))
}
