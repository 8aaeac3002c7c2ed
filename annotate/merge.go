package annotate

import "reflect"

// Merge returns a new Operation holding dst deep-merged with src.
//
// For keys present in both, the src value wins. When both values are objects
// (any map with string keys) the merge recurses and the merged object is a
// map[string]any. Arrays and all other
// values from src replace the dst value wholesale. Neither argument is
// mutated, and values copied from src are cloned so the result never aliases
// src.
func Merge(dst, src Operation) Operation {
	out := make(Operation, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = mergeValue(out[k], v)
	}
	return out
}

func mergeValue(dst, src any) any {
	srcMap, ok := asObject(src)
	if !ok {
		return cloneValue(src)
	}
	dstMap, ok := asObject(dst)
	if !ok {
		return cloneValue(src)
	}
	out := make(map[string]any, len(dstMap)+len(srcMap))
	for k, v := range dstMap {
		out[k] = v
	}
	for k, v := range srcMap {
		out[k] = mergeValue(out[k], v)
	}
	return out
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Operation:
		return m, true
	case map[string]any:
		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// Clone returns a deep copy of op. Maps and slices are copied recursively;
// pointers and scalar values are shared.
func Clone(op Operation) Operation {
	if op == nil {
		return nil
	}
	out := make(Operation, len(op))
	for k, v := range op {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case Operation:
		return Clone(t)
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneElem(rv.Index(i)))
		}
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneElem(iter.Value()))
		}
		return out.Interface()
	default:
		return v
	}
}

// cloneElem clones a slice element or map value, keeping the static type of
// the container.
func cloneElem(v reflect.Value) reflect.Value {
	c := cloneValue(v.Interface())
	if c == nil {
		return reflect.Zero(v.Type())
	}
	return reflect.ValueOf(c)
}
