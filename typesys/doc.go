// Package typesys implements the type registry for .NET assembly
// analysis: a thread-safe, token-keyed store of type entities with
// secondary indices by name, full name, namespace and origin source.
//
// A Registry bootstraps the CLR primitive types at reserved tokens and
// grows as TypeDef, TypeRef and TypeSpec rows are ingested. Entities
// are shared read-mostly; the only post-construction mutation points
// are the write-once base type slot and the append-only field and
// method containers.
package typesys
