package openapi

import (
	"strings"
	"unicode"

	"github.com/vitalvas/opdoc/annotate"
)

const successDescription = "Successful response"

// baseOperation synthesizes the Operation Object of a route before any
// annotation patches are applied. Empty fields are left out.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
func baseOperation(route annotate.Route, tags []string) annotate.Operation {
	_, params := parsePath(route.FullPath())

	op := annotate.Operation{
		"operationId": operationID(route),
		"responses": map[string]any{
			annotate.StatusCode(route): map[string]any{
				"description": successDescription,
				"content": map[string]any{
					annotate.ContentType(route): map[string]any{},
				},
			},
		},
	}

	if summary := sentenceCase(route.Action.Method); summary != "" {
		op["summary"] = summary
	}

	if len(tags) == 0 {
		tags = defaultTags(route)
	}
	if len(tags) > 0 {
		list := make([]any, len(tags))
		for i, tag := range tags {
			list[i] = tag
		}
		op["tags"] = list
	}

	if len(params) > 0 {
		op["parameters"] = params
	}

	return op
}

// operationID returns "<Type>.<member>" for the route's handler.
func operationID(route annotate.Route) string {
	name := ""
	if route.Action.Target != nil {
		name = route.Action.Target.Name()
	}
	if name == "" {
		return route.Action.Method
	}
	return name + "." + route.Action.Method
}

// defaultTags derives a single tag from the controller type name with a
// trailing "Controller" removed: "UserProfileController" becomes
// "User Profile".
func defaultTags(route annotate.Route) []string {
	t := route.Controller.Target
	if t == nil {
		return nil
	}
	name := strings.TrimSuffix(t.Name(), "Controller")
	words := splitWords(name)
	if len(words) == 0 {
		return nil
	}
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return []string{strings.Join(words, " ")}
}

// sentenceCase turns an identifier into a sentence: "listUsers" and
// "ListUsers" become "List users".
func sentenceCase(ident string) string {
	words := splitWords(ident)
	if len(words) == 0 {
		return ""
	}
	s := strings.ToLower(strings.Join(words, " "))
	return upperFirst(s)
}

// splitWords splits an identifier at case changes, digits, and separators.
// Runs of capitals stay together: "getHTTPStatus" is [get HTTP Status].
func splitWords(ident string) []string {
	runes := []rune(ident)
	var words []string
	start := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush(i)
			start = i
		case unicode.IsUpper(r) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(prev):
			flush(i)
			start = i
		case unicode.IsDigit(r) != unicode.IsDigit(prev):
			flush(i)
			start = i
		}
	}
	flush(len(runes))

	return words
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
