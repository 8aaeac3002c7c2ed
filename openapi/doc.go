// Package openapi assembles an OpenAPI v3.1.0 document from controller
// declarations and the annotation patches registered in package annotate.
//
// See: https://spec.openapis.org/oas/v3.1.0
//
// # Spec Builder
//
// Declare controllers and their actions, then build the document:
//
//	spec := openapi.NewSpec(openapi.Info{Title: "My API", Version: "1.0.0"})
//
//	users := spec.Controller(UserController{}, "/users").JSON()
//	users.Get("", "List")
//	users.Get("/{id:uuid}", "Get")
//	users.Post("", "Create").SuccessCode(http.StatusCreated)
//
//	doc := spec.Build()
//
// # Base Operations
//
// Every action gets a base Operation derived from its declaration:
//
//   - operationId: "<Type>.<member>", e.g. "UserController.List"
//   - summary: the member name as a sentence, e.g. "List users" for "ListUsers"
//   - tags: the controller tags, or the type name without "Controller"
//   - parameters: one path parameter per {name} or {name:macro} variable
//   - responses: the success status with an empty media type entry
//
// The success status defaults to 200 and the content type to
// application/json for JSON controllers or "text/html; charset=utf-8"
// otherwise. Use SuccessCode and ContentType on the action to override them.
//
// # Annotations
//
// The base operation is folded with the patches registered for the action's
// handler. Patches come from the spec registry (annotate.Default unless
// SetRegistry is called), whether registered through ActionBuilder.Annotate
// or directly:
//
//	users.Get("", "List").Annotate(
//	    annotate.OpenAPI(annotate.Operation{"description": "Returns all users"}),
//	    annotate.ResponseSchema(User{}, annotate.ResponseSchemaOptions{IsArray: true}),
//	)
//
// # Path Parameter Typing
//
// Route macros map to OpenAPI types:
//
//	{id:uuid}   -> type: string, format: uuid
//	{page:int}  -> type: integer
//	{v:float}   -> type: number
//	{d:date}    -> type: string, format: date
//	{h:domain}  -> type: string, format: hostname
//
// # Serving the Document
//
// Handle registers the endpoints on an *http.ServeMux:
//
//	spec.Handle(mux, "/swagger", nil)
//
//	/swagger/            - Swagger UI
//	/swagger/schema.json - document as JSON
//	/swagger/schema.yaml - document as YAML
//
// Each endpoint builds the document once on its first request.
package openapi
