// Package annotate attaches supplemental OpenAPI Operation fragments to route
// handlers and folds them into a base Operation when documentation is built.
//
// A handler is identified by its declaring type and member (method) name.
// Each (type, member) pair owns an ordered, append-only sequence of patches.
// A patch is either a literal partial Operation, merged structurally, or a
// transform function that computes the next Operation from the current one.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
//
// # Registering Patches
//
// Patches are usually registered once, at package initialization:
//
//	type UserController struct{}
//
//	func init() {
//	    annotate.Register(UserController{}, "List",
//	        annotate.OpenAPI(annotate.Operation{"description": "Lists all users"}),
//	        annotate.ResponseSchema("User", annotate.ResponseSchemaOptions{IsArray: true}),
//	    )
//	}
//
// The package-level functions use the Default registry. Use NewRegistry for an
// isolated store, for example in tests:
//
//	reg := annotate.NewRegistry()
//	reg.Register(&UserController{}, "Get", annotate.ResponseSchema(User{}, annotate.ResponseSchemaOptions{}))
//
// Targets may be values, pointers, or a reflect.Type. Pointer types are
// normalized to their element type, so UserController{} and &UserController{}
// address the same sequence.
//
// # Applying Patches
//
// Apply folds the sequence registered for the route's handler, left to right,
// starting from the caller's base Operation:
//
//	op := reg.Apply(base, route)
//
// Literal patches are merged with Merge: keys present in both sides take the
// patch value, nested objects merge recursively, and arrays are replaced
// wholesale. Transform patches receive the accumulated Operation and the route.
// The base Operation is never mutated, and an empty sequence returns base as is.
//
// # Response Schemas
//
// ResponseSchema is a convenience transform that documents a response body by
// component schema reference:
//
//	annotate.ResponseSchema(Widget{}, annotate.ResponseSchemaOptions{
//	    StatusCode: http.StatusCreated,
//	    IsArray:    true,
//	})
//
// produces, on a JSON controller:
//
//	{"201": {"description": "", "content": {"application/json": {"schema":
//	    {"type": "array", "items": {"$ref": "#/components/schemas/Widget"}}}}}}
//
// Content type and status code default to the values inferred from the route
// (see ContentType and StatusCode). StatusKey documents keys that are not a
// single code, such as "default" or "4XX". An empty schema name leaves the
// Operation untouched.
//
// # JSON Patch
//
// JSONPatch registers RFC 6902 operations as a transform:
//
//	p := annotate.MustJSONPatch([]byte(`[{"op": "add", "path": "/deprecated", "value": true}]`))
//
// See: https://www.rfc-editor.org/rfc/rfc6902
package annotate
