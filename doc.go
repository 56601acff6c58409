// Package cilmeta provides ECMA-335 metadata analysis primitives for
// .NET assemblies: a signature blob decoder/encoder and a concurrent
// type registry.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	cilmeta/             Root package with consumer-facing interfaces
//	├── token/           Metadata token keys (table id + row index)
//	├── errors/          Structured error types for debugging
//	├── signature/       Signature blob decoding, encoding and rendering
//	└── typesys/         Type registry, entities, flavors and sources
//
// # Quick Start
//
// Decode a method signature blob and resolve its tokens:
//
//	sig, err := signature.NewDecoder(blobBytes).DecodeMethod()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry, err := typesys.NewRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if cls, ok := sig.ReturnType.Type.(signature.ClassSig); ok {
//	    entity := registry.Get(cls.Type)
//	    fmt.Println(entity.FullName())
//	}
//
// # Data Flow
//
// Blob bytes flow through a Decoder into a signature tree holding raw
// tokens; the caller resolves those tokens through the Registry into
// canonical, shared type entities. The registry tracks external origins
// (other assemblies, modules, files) through a side table so entities
// never hold references back into assembly-owned metadata.
//
// # Thread Safety
//
// Registry is safe for concurrent use. Decoder is NOT thread-safe and
// is single-use; construct one per blob and decode once.
package cilmeta
