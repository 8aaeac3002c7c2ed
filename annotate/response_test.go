package annotate

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Widget struct {
	ID string `json:"id"`
}

type Page[T any] struct {
	Items []T `json:"items"`
}

type Pair[K, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

type WidgetController struct{}

func jsonRoute(member string) Route {
	r := NewRoute(WidgetController{}, member)
	r.Controller.JSON = true
	return r
}

func TestResponseSchema(t *testing.T) {
	t.Run("array of named type with status code", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(WidgetController{}, "Create", ResponseSchema(Widget{}, ResponseSchemaOptions{
			IsArray:    true,
			StatusCode: http.StatusCreated,
		}))

		out := reg.Apply(Operation{}, jsonRoute("Create"))

		assert.Equal(t, map[string]any{
			"201": map[string]any{
				"description": "",
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{
							"type":  "array",
							"items": map[string]any{"$ref": "#/components/schemas/Widget"},
						},
					},
				},
			},
		}, out["responses"])
	})

	t.Run("status key takes precedence over status code", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(WidgetController{}, "Get",
			ResponseSchema("ErrorResponse", ResponseSchemaOptions{
				StatusKey:   "default",
				StatusCode:  http.StatusInternalServerError,
				Description: "Unexpected error",
			}),
			ResponseSchema("ErrorResponse", ResponseSchemaOptions{StatusKey: "4XX"}),
		)

		out := reg.Apply(Operation{}, jsonRoute("Get"))

		responses := out["responses"].(map[string]any)
		require.Len(t, responses, 2)
		assert.Equal(t, "Unexpected error", responses["default"].(map[string]any)["description"])
		assert.Contains(t, responses, "4XX")
		assert.NotContains(t, responses, "500")
	})

	t.Run("single reference with route defaults", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(WidgetController{}, "Get", ResponseSchema("Widget", ResponseSchemaOptions{}))

		out := reg.Apply(Operation{}, jsonRoute("Get"))

		assert.Equal(t, map[string]any{
			"200": map[string]any{
				"description": "",
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"$ref": "#/components/schemas/Widget"},
					},
				},
			},
		}, out["responses"])
	})

	t.Run("explicit content type and description", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(WidgetController{}, "Get", ResponseSchema("Widget", ResponseSchemaOptions{
			ContentType: "application/xml",
			Description: "A widget",
		}))

		out := reg.Apply(Operation{}, jsonRoute("Get"))

		resp := out["responses"].(map[string]any)["200"].(map[string]any)
		assert.Equal(t, "A widget", resp["description"])
		assert.Contains(t, resp["content"], "application/xml")
		assert.NotContains(t, resp["content"], "application/json")
	})

	t.Run("route overrides are used as defaults", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(WidgetController{}, "Upload", ResponseSchema("Widget", ResponseSchemaOptions{}))

		route := NewRoute(WidgetController{}, "Upload")
		route.Action.ContentType = "text/plain"
		route.Action.SuccessCode = http.StatusAccepted

		out := reg.Apply(Operation{}, route)

		resp := out["responses"].(map[string]any)
		require.Contains(t, resp, "202")
		assert.Contains(t, resp["202"].(map[string]any)["content"], "text/plain")
	})

	t.Run("non-json controller default content type", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(WidgetController{}, "Page", ResponseSchema("Widget", ResponseSchemaOptions{}))

		out := reg.Apply(Operation{}, NewRoute(WidgetController{}, "Page"))

		resp := out["responses"].(map[string]any)["200"].(map[string]any)
		assert.Contains(t, resp["content"], "text/html; charset=utf-8")
	})

	t.Run("merges with existing responses", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(WidgetController{}, "Get", ResponseSchema(&Widget{}, ResponseSchemaOptions{Description: "Found"}))

		base := Operation{
			"operationId": "WidgetController.Get",
			"responses": map[string]any{
				"200": map[string]any{
					"description": "Successful response",
					"content":     map[string]any{"application/json": map[string]any{}},
				},
				"404": map[string]any{"description": "Not Found"},
			},
		}

		out := reg.Apply(base, jsonRoute("Get"))

		assert.Equal(t, "WidgetController.Get", out["operationId"])
		responses := out["responses"].(map[string]any)
		assert.Equal(t, map[string]any{"description": "Not Found"}, responses["404"])
		assert.Equal(t, map[string]any{
			"description": "Found",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/Widget"},
				},
			},
		}, responses["200"])
		assert.Equal(t, "Successful response",
			base["responses"].(map[string]any)["200"].(map[string]any)["description"])
	})

	t.Run("empty name is a no-op", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(WidgetController{}, "Get", ResponseSchema("", ResponseSchemaOptions{StatusCode: 201}))

		base := Operation{"summary": "Get", "responses": map[string]any{"200": map[string]any{"description": "OK"}}}
		out := reg.Apply(base, jsonRoute("Get"))
		assert.Equal(t, base, out)
	})

	t.Run("unnamed type is a no-op", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(WidgetController{}, "Get",
			ResponseSchema(struct{ A int }{}, ResponseSchemaOptions{}),
			ResponseSchema([]Widget{}, ResponseSchemaOptions{}),
			ResponseSchema(nil, ResponseSchemaOptions{}),
		)

		base := Operation{"summary": "Get"}
		assert.Equal(t, base, reg.Apply(base, jsonRoute("Get")))
	})

	t.Run("later schema wins on same status", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(WidgetController{}, "Get",
			ResponseSchema("First", ResponseSchemaOptions{}),
			ResponseSchema("Second", ResponseSchemaOptions{}),
		)

		out := reg.Apply(Operation{}, jsonRoute("Get"))
		schema := out["responses"].(map[string]any)["200"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["schema"]
		assert.Equal(t, map[string]any{"$ref": "#/components/schemas/Second"}, schema)
	})

	t.Run("literal after response schema merges per key", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(WidgetController{}, "Get",
			ResponseSchema("Widget", ResponseSchemaOptions{IsArray: true}),
			OpenAPI(Operation{"responses": map[string]any{"200": map[string]any{"description": "Widgets"}}}),
		)

		out := reg.Apply(Operation{}, jsonRoute("Get"))
		resp := out["responses"].(map[string]any)["200"].(map[string]any)
		assert.Equal(t, "Widgets", resp["description"])
		assert.Contains(t, resp, "content")
	})
}

func TestSchemaName(t *testing.T) {
	tests := []struct {
		name string
		ref  any
		want string
	}{
		{"string", "Widget", "Widget"},
		{"empty string", "", ""},
		{"nil", nil, ""},
		{"value", Widget{}, "Widget"},
		{"pointer", &Widget{}, "Widget"},
		{"reflect type", reflect.TypeOf(Widget{}), "Widget"},
		{"reflect pointer type", reflect.TypeOf(&Widget{}), "Widget"},
		{"slice", []Widget{}, ""},
		{"anonymous struct", struct{}{}, ""},
		{"generic", Page[Widget]{}, "PageWidget"},
		{"generic list", Page[[]Widget]{}, "PageWidgetList"},
		{"generic builtin", Page[string]{}, "Pagestring"},
		{"generic two args", Pair[string, Widget]{}, "PairstringWidget"},
		{"nested generic", Pair[Widget, Page[Widget]]{}, "PairWidgetPageWidget"},
		{"nested generic with two args", Pair[string, Pair[Widget, []Widget]]{}, "PairstringPairWidgetWidgetList"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schemaName(tt.ref))
		})
	}
}

func TestSchemaRef(t *testing.T) {
	assert.Equal(t, "#/components/schemas/Widget", SchemaRef("Widget"))
}
