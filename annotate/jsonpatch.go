package annotate

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// JSONPatch returns a transform patch applying the RFC 6902 document doc to
// the JSON form of the route's Operation. An error is returned when doc is not
// a valid JSON Patch. If the operations fail against a particular Operation
// (for example a failing "test" operation), that Operation passes through
// unchanged.
//
// See: https://www.rfc-editor.org/rfc/rfc6902
func JSONPatch(doc []byte) (Patch, error) {
	ops, err := jsonpatch.DecodePatch(doc)
	if err != nil {
		return Patch{}, fmt.Errorf("decode json patch: %w", err)
	}

	return Transform(func(op Operation, _ Route) Operation {
		out, err := applyJSONPatch(ops, op)
		if err != nil {
			return op
		}
		return out
	}), nil
}

// MustJSONPatch is like JSONPatch but panics on error.
func MustJSONPatch(doc []byte) Patch {
	p, err := JSONPatch(doc)
	if err != nil {
		panic(err)
	}
	return p
}

func applyJSONPatch(ops jsonpatch.Patch, op Operation) (Operation, error) {
	if op == nil {
		op = Operation{}
	}
	data, err := json.Marshal(op)
	if err != nil {
		return nil, fmt.Errorf("marshal operation: %w", err)
	}
	patched, err := ops.Apply(data)
	if err != nil {
		return nil, fmt.Errorf("apply json patch: %w", err)
	}
	var out Operation
	if err := json.Unmarshal(patched, &out); err != nil {
		return nil, fmt.Errorf("unmarshal operation: %w", err)
	}
	return out, nil
}
