package annotate

import (
	"strconv"
	"strings"
)

const componentSchemaPrefix = "#/components/schemas/"

// OpenAPI returns a patch that merges op into the route's Operation. On
// conflicting keys the values in op win.
func OpenAPI(op Operation) Patch {
	return Literal(op)
}

// OpenAPIFunc returns a patch that replaces the route's Operation with the
// result of fn.
func OpenAPIFunc(fn TransformFunc) Patch {
	return Transform(fn)
}

// ResponseSchemaOptions configures ResponseSchema. Zero values fall back to
// the values inferred from the route.
type ResponseSchemaOptions struct {
	// ContentType of the response body (default: ContentType(route)).
	ContentType string

	// Description of the response (default: "").
	Description string

	// StatusCode of the response (default: StatusCode(route)).
	StatusCode int

	// StatusKey is a literal responses key such as "default" or "4XX". It
	// takes precedence over StatusCode when set.
	StatusKey string

	// IsArray documents the body as an array of the referenced schema.
	IsArray bool
}

// ResponseSchema returns a patch documenting the response body of a route as
// a reference to a component schema.
//
// ref is either the schema name as a string, a reflect.Type, or a value of
// the response type. For types the (pointer-dereferenced) type name is used.
// Unnamed types and the empty string produce a no-op patch.
//
// See: https://spec.openapis.org/oas/v3.1.0#responses-object
// See: https://spec.openapis.org/oas/v3.1.0#reference-object
func ResponseSchema(ref any, opts ResponseSchemaOptions) Patch {
	name := schemaName(ref)

	return Transform(func(op Operation, route Route) Operation {
		if name == "" {
			return op
		}

		contentType := opts.ContentType
		if contentType == "" {
			contentType = ContentType(route)
		}
		statusCode := StatusCode(route)
		switch {
		case opts.StatusKey != "":
			statusCode = opts.StatusKey
		case opts.StatusCode != 0:
			statusCode = strconv.Itoa(opts.StatusCode)
		}

		var schema map[string]any
		reference := map[string]any{"$ref": SchemaRef(name)}
		if opts.IsArray {
			schema = map[string]any{"type": "array", "items": reference}
		} else {
			schema = reference
		}

		return Merge(op, Operation{
			"responses": map[string]any{
				statusCode: map[string]any{
					"description": opts.Description,
					"content": map[string]any{
						contentType: map[string]any{
							"schema": schema,
						},
					},
				},
			},
		})
	})
}

// SchemaRef returns the component schema reference for name.
func SchemaRef(name string) string {
	return componentSchemaPrefix + name
}

// schemaName resolves the component schema name of ref. Generic instances
// are flattened: "Page[pkg.User]" becomes "PageUser" and "Page[[]pkg.User]"
// becomes "PageUserList".
func schemaName(ref any) string {
	switch v := ref.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	t := normalizeType(ref)
	if t == nil {
		return ""
	}
	return flattenTypeName(t.Name())
}

func flattenTypeName(name string) string {
	base, args, ok := strings.Cut(name, "[")
	if !ok {
		return unqualify(name)
	}
	args = strings.TrimSuffix(args, "]")

	var b strings.Builder
	b.WriteString(unqualify(base))
	for _, arg := range splitTypeArgs(args) {
		arg = strings.TrimSpace(arg)
		list := strings.HasPrefix(arg, "[]")
		b.WriteString(flattenTypeName(strings.TrimPrefix(arg, "[]")))
		if list {
			b.WriteString("List")
		}
	}
	return b.String()
}

// splitTypeArgs splits a type argument list at top-level commas only, so
// "K,pkg.Page[A,B]" yields [K pkg.Page[A,B]].
func splitTypeArgs(args string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, args[start:i])
				start = i + 1
			}
		}
	}
	return append(out, args[start:])
}

// unqualify strips the package path from a type name.
func unqualify(name string) string {
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		return name[dot+1:]
	}
	return name
}
