package openapi

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/opdoc/annotate"
)

// Spec collects controllers and metadata and builds a complete Document.
type Spec struct {
	info         Info
	servers      []Server
	tags         []Tag
	security     []SecurityRequirement
	externalDocs *ExternalDocs

	schemas         map[string]any
	securitySchemes map[string]any

	registry    *annotate.Registry
	controllers []*ControllerBuilder
}

// NewSpec creates a new spec builder with the given API info. Annotations are
// read from annotate.Default unless SetRegistry is called.
func NewSpec(info Info) *Spec {
	return &Spec{
		info:     info,
		registry: annotate.Default,
	}
}

// SetRegistry sets the annotation registry used by Build and by
// ActionBuilder.Annotate. Call it before declaring annotated actions.
func (s *Spec) SetRegistry(reg *annotate.Registry) *Spec {
	if reg == nil {
		reg = annotate.Default
	}
	s.registry = reg
	return s
}

// Registry returns the annotation registry of the spec.
func (s *Spec) Registry() *annotate.Registry {
	return s.registry
}

// AddServer adds a server to the spec.
func (s *Spec) AddServer(server Server) *Spec {
	s.servers = append(s.servers, server)
	return s
}

// AddTag adds a user-defined tag with optional description and external docs.
func (s *Spec) AddTag(tag Tag) *Spec {
	s.tags = append(s.tags, tag)
	return s
}

// SetSecurity sets the document-level security requirements.
func (s *Spec) SetSecurity(reqs ...SecurityRequirement) *Spec {
	s.security = reqs
	return s
}

// SetExternalDocs sets the document-level external documentation link.
func (s *Spec) SetExternalDocs(url, description string) *Spec {
	s.externalDocs = &ExternalDocs{URL: url, Description: description}
	return s
}

// AddComponentSchema registers a reusable schema under #/components/schemas.
// The schema is any JSON-compatible value.
func (s *Spec) AddComponentSchema(name string, schema any) *Spec {
	if s.schemas == nil {
		s.schemas = make(map[string]any)
	}
	s.schemas[name] = schema
	return s
}

// AddSecurityScheme registers a reusable security scheme in components.
func (s *Spec) AddSecurityScheme(name string, scheme any) *Spec {
	if s.securitySchemes == nil {
		s.securitySchemes = make(map[string]any)
	}
	s.securitySchemes[name] = scheme
	return s
}

// Controller declares a controller type. target may be a value, a pointer,
// or a reflect.Type; prefix is prepended to every action path.
func (s *Spec) Controller(target any, prefix string) *ControllerBuilder {
	c := &ControllerBuilder{
		spec:       s,
		controller: annotate.Controller{Target: annotate.TypeOf(target), Prefix: prefix},
	}
	s.controllers = append(s.controllers, c)
	return c
}

// Routes returns the descriptors of all declared actions in declaration order.
func (s *Spec) Routes() []annotate.Route {
	var routes []annotate.Route
	for _, c := range s.controllers {
		for _, a := range c.actions {
			routes = append(routes, a.Route())
		}
	}
	return routes
}

// Build assembles the Document. Each action gets a synthesized base operation
// which is then folded with the patches registered for its handler.
func (s *Spec) Build() *Document {
	doc := &Document{
		OpenAPI:      "3.1.0",
		Info:         s.info,
		Servers:      s.servers,
		Security:     s.security,
		ExternalDocs: s.externalDocs,
	}

	for _, c := range s.controllers {
		for _, a := range c.actions {
			route := a.Route()
			openAPIPath, _ := parsePath(route.FullPath())

			op := s.registry.Apply(baseOperation(route, c.tags), route)

			if doc.Paths == nil {
				doc.Paths = make(map[string]*PathItem)
			}
			pathItem, ok := doc.Paths[openAPIPath]
			if !ok {
				pathItem = &PathItem{}
				doc.Paths[openAPIPath] = pathItem
			}
			assignOperation(pathItem, route.Action.HTTPMethod, op)
		}
	}

	if len(s.schemas) > 0 || len(s.securitySchemes) > 0 {
		doc.Components = &Components{
			Schemas:         s.schemas,
			SecuritySchemes: s.securitySchemes,
		}
	}

	doc.Tags = s.mergeTags(doc.Paths)

	return doc
}

// JSON builds the document and encodes it as indented JSON.
func (s *Spec) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(s.Build(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document as json: %w", err)
	}
	return data, nil
}

// YAML builds the document and encodes it as YAML.
func (s *Spec) YAML() ([]byte, error) {
	data, err := yaml.Marshal(s.Build())
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document as yaml: %w", err)
	}
	return data, nil
}

// mergeTags combines tags collected from operations with user-defined tags.
// User-defined tags keep their description and externalDocs, and are included
// even when no operation uses them. The result is sorted by name.
func (s *Spec) mergeTags(paths map[string]*PathItem) []Tag {
	userTags := make(map[string]Tag, len(s.tags))
	for _, tag := range s.tags {
		userTags[tag.Name] = tag
	}

	seen := make(map[string]bool)
	var tags []Tag

	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		if userTag, ok := userTags[name]; ok {
			tags = append(tags, userTag)
		} else {
			tags = append(tags, Tag{Name: name})
		}
	}

	for _, pathItem := range paths {
		for _, op := range pathItem.operations() {
			for _, name := range operationTags(op) {
				add(name)
			}
		}
	}
	for _, tag := range s.tags {
		add(tag.Name)
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	return tags
}

// operationTags reads the tags of an operation, which may have been replaced
// by a patch with either []string or []any.
func operationTags(op annotate.Operation) []string {
	switch v := op["tags"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
