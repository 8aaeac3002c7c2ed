package openapi

import (
	"net/http"

	"github.com/vitalvas/opdoc/annotate"
)

// ControllerBuilder declares the actions of one controller type. Actions
// share the controller's path prefix, tags, and response content type.
type ControllerBuilder struct {
	spec       *Spec
	controller annotate.Controller
	tags       []string
	actions    []*ActionBuilder
}

// JSON marks the controller as responding with application/json unless an
// action overrides its content type.
func (c *ControllerBuilder) JSON() *ControllerBuilder {
	c.controller.JSON = true
	return c
}

// Tags replaces the tag derived from the controller type name. Calls append.
func (c *ControllerBuilder) Tags(tags ...string) *ControllerBuilder {
	c.tags = append(c.tags, tags...)
	return c
}

// Get declares a GET action served by the handler member.
func (c *ControllerBuilder) Get(path, member string) *ActionBuilder {
	return c.Action(http.MethodGet, path, member)
}

// Post declares a POST action served by the handler member.
func (c *ControllerBuilder) Post(path, member string) *ActionBuilder {
	return c.Action(http.MethodPost, path, member)
}

// Put declares a PUT action served by the handler member.
func (c *ControllerBuilder) Put(path, member string) *ActionBuilder {
	return c.Action(http.MethodPut, path, member)
}

// Patch declares a PATCH action served by the handler member.
func (c *ControllerBuilder) Patch(path, member string) *ActionBuilder {
	return c.Action(http.MethodPatch, path, member)
}

// Delete declares a DELETE action served by the handler member.
func (c *ControllerBuilder) Delete(path, member string) *ActionBuilder {
	return c.Action(http.MethodDelete, path, member)
}

// Action declares an action for an arbitrary HTTP method. Path variables use
// the {name} or {name:macro} form.
func (c *ControllerBuilder) Action(method, path, member string) *ActionBuilder {
	a := &ActionBuilder{
		controller: c,
		action: annotate.Action{
			Target:     c.controller.Target,
			Method:     member,
			HTTPMethod: method,
			Path:       path,
		},
	}
	c.actions = append(c.actions, a)
	return a
}

// ActionBuilder configures a single action.
type ActionBuilder struct {
	controller *ControllerBuilder
	action     annotate.Action
}

// ContentType overrides the response content type of the action.
func (a *ActionBuilder) ContentType(ct string) *ActionBuilder {
	a.action.ContentType = ct
	return a
}

// SuccessCode overrides the default 200 success status code.
func (a *ActionBuilder) SuccessCode(code int) *ActionBuilder {
	a.action.SuccessCode = code
	return a
}

// Annotate registers patches for the action's handler in the spec registry.
// Patches registered elsewhere for the same handler are kept; order across
// calls is registration order.
func (a *ActionBuilder) Annotate(patches ...annotate.Patch) *ActionBuilder {
	a.controller.spec.registry.Register(a.action.Target, a.action.Method, patches...)
	return a
}

// Route returns the route descriptor of the action.
func (a *ActionBuilder) Route() annotate.Route {
	return annotate.Route{
		Controller: a.controller.controller,
		Action:     a.action,
	}
}
