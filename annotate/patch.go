package annotate

// Operation is an OpenAPI Operation Object in generic form. Keys are the
// Operation fields (summary, responses, ...) and values are arbitrary JSON
// compatible data.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
type Operation map[string]any

// TransformFunc computes a replacement Operation from the accumulated one.
type TransformFunc func(op Operation, route Route) Operation

// PatchKind discriminates the two Patch variants.
type PatchKind int

const (
	// KindLiteral patches are merged into the accumulator with Merge.
	KindLiteral PatchKind = iota
	// KindTransform patches replace the accumulator with their return value.
	KindTransform
)

// String returns the kind name.
func (k PatchKind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindTransform:
		return "transform"
	default:
		return "unknown"
	}
}

// Patch is a deferred modification of an Operation. The zero value is a
// literal patch with no content, which is a no-op.
type Patch struct {
	kind      PatchKind
	literal   Operation
	transform TransformFunc
}

// Literal returns a patch that merges op into the accumulated Operation.
func Literal(op Operation) Patch {
	return Patch{kind: KindLiteral, literal: op}
}

// Transform returns a patch that replaces the accumulated Operation with the
// result of fn. A nil fn is treated as the identity.
func Transform(fn TransformFunc) Patch {
	return Patch{kind: KindTransform, transform: fn}
}

// Kind reports which variant the patch holds.
func (p Patch) Kind() PatchKind {
	return p.kind
}

// apply computes the next accumulator. The accumulator passed to a transform
// is a copy, so the caller's base Operation stays untouched.
func (p Patch) apply(acc Operation, route Route) Operation {
	switch p.kind {
	case KindTransform:
		if p.transform == nil {
			return acc
		}
		return p.transform(Clone(acc), route)
	default:
		return Merge(acc, p.literal)
	}
}
