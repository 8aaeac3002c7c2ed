package openapi

import (
	"net/http"

	"github.com/vitalvas/opdoc/annotate"
)

// Document represents the root of an OpenAPI v3.1.0 document.
//
// See: https://spec.openapis.org/oas/v3.1.0#openapi-object
type Document struct {
	OpenAPI      string                `json:"openapi" yaml:"openapi"`
	Info         Info                  `json:"info" yaml:"info"`
	Servers      []Server              `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths        map[string]*PathItem  `json:"paths,omitempty" yaml:"paths,omitempty"`
	Components   *Components           `json:"components,omitempty" yaml:"components,omitempty"`
	Tags         []Tag                 `json:"tags,omitempty" yaml:"tags,omitempty"`
	Security     []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`
	ExternalDocs *ExternalDocs         `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// Info provides metadata about the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#info-object
type Info struct {
	Title       string   `json:"title" yaml:"title"`
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Contact     *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`
	License     *License `json:"license,omitempty" yaml:"license,omitempty"`
	Version     string   `json:"version" yaml:"version"`
}

// Contact represents contact information for the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#contact-object
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// License represents license information for the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#license-object
type License struct {
	Name       string `json:"name" yaml:"name"`
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Server represents a server.
//
// See: https://spec.openapis.org/oas/v3.1.0#server-object
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem describes the operations available on a single path. Operations
// are kept in generic form so annotation patches can reach any field.
//
// See: https://spec.openapis.org/oas/v3.1.0#path-item-object
type PathItem struct {
	Get     annotate.Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     annotate.Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    annotate.Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  annotate.Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options annotate.Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    annotate.Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   annotate.Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Trace   annotate.Operation `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// Operation returns the operation stored for the HTTP method, or nil.
func (p *PathItem) Operation(method string) annotate.Operation {
	switch method {
	case http.MethodGet:
		return p.Get
	case http.MethodPut:
		return p.Put
	case http.MethodPost:
		return p.Post
	case http.MethodDelete:
		return p.Delete
	case http.MethodOptions:
		return p.Options
	case http.MethodHead:
		return p.Head
	case http.MethodPatch:
		return p.Patch
	case http.MethodTrace:
		return p.Trace
	default:
		return nil
	}
}

// operations returns the non-nil operations in a fixed method order.
func (p *PathItem) operations() []annotate.Operation {
	var out []annotate.Operation
	for _, op := range []annotate.Operation{
		p.Get, p.Put, p.Post, p.Delete, p.Options, p.Head, p.Patch, p.Trace,
	} {
		if op != nil {
			out = append(out, op)
		}
	}
	return out
}

// assignOperation assigns an operation to the correct HTTP method field
// on the path item. Unknown methods are ignored.
func assignOperation(pathItem *PathItem, method string, op annotate.Operation) {
	switch method {
	case http.MethodGet:
		pathItem.Get = op
	case http.MethodPut:
		pathItem.Put = op
	case http.MethodPost:
		pathItem.Post = op
	case http.MethodDelete:
		pathItem.Delete = op
	case http.MethodOptions:
		pathItem.Options = op
	case http.MethodHead:
		pathItem.Head = op
	case http.MethodPatch:
		pathItem.Patch = op
	case http.MethodTrace:
		pathItem.Trace = op
	}
}

// Components holds reusable objects referenced from operations.
//
// See: https://spec.openapis.org/oas/v3.1.0#components-object
type Components struct {
	Schemas         map[string]any `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	SecuritySchemes map[string]any `json:"securitySchemes,omitempty" yaml:"securitySchemes,omitempty"`
}

// Tag adds metadata to a single tag used by operations.
//
// See: https://spec.openapis.org/oas/v3.1.0#tag-object
type Tag struct {
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// SecurityRequirement lists the required security schemes.
//
// See: https://spec.openapis.org/oas/v3.1.0#security-requirement-object
type SecurityRequirement map[string][]string

// ExternalDocs references external documentation.
//
// See: https://spec.openapis.org/oas/v3.1.0#external-documentation-object
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url"`
}
