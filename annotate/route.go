package annotate

import (
	"net/http"
	"reflect"
	"strconv"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeDefault = "text/html; charset=utf-8"
)

// Controller describes the type that groups a set of actions.
type Controller struct {
	// Target is the controller type.
	Target reflect.Type

	// Prefix is prepended to every action path.
	Prefix string

	// JSON marks a controller whose actions respond with JSON by default.
	JSON bool
}

// Action describes a single handler method bound to an HTTP route.
type Action struct {
	// Target is the declaring type of the handler method.
	Target reflect.Type

	// Method is the handler member name.
	Method string

	// HTTPMethod is the HTTP verb, e.g. http.MethodGet.
	HTTPMethod string

	// Path is the action path relative to the controller prefix.
	Path string

	// ContentType overrides the content type inferred from the controller.
	ContentType string

	// SuccessCode overrides the default 200 status code.
	SuccessCode int
}

// Route is the read-only descriptor of one registered HTTP route.
type Route struct {
	Controller Controller
	Action     Action
}

// NewRoute returns a route for the handler member of target. The controller
// defaults to the same type as the action.
func NewRoute(target any, member string) Route {
	t := normalizeType(target)
	return Route{
		Controller: Controller{Target: t},
		Action:     Action{Target: t, Method: member, HTTPMethod: http.MethodGet},
	}
}

// Key returns the annotation key of the route's handler. Pointer targets
// resolve to their element type, as in Register.
func (r Route) Key() Key {
	return Key{Type: normalizeType(r.Action.Target), Member: r.Action.Method}
}

// FullPath joins the controller prefix and action path.
func (r Route) FullPath() string {
	return r.Controller.Prefix + r.Action.Path
}

// ContentType returns the content type of the route: the action override if
// set, otherwise application/json for JSON controllers and
// "text/html; charset=utf-8" for the rest.
func ContentType(route Route) string {
	if route.Action.ContentType != "" {
		return route.Action.ContentType
	}
	if route.Controller.JSON {
		return contentTypeJSON
	}
	return contentTypeDefault
}

// StatusCode returns the success status code of the route as a response key.
// It defaults to "200".
func StatusCode(route Route) string {
	if route.Action.SuccessCode != 0 {
		return strconv.Itoa(route.Action.SuccessCode)
	}
	return strconv.Itoa(http.StatusOK)
}
