package openapi

import (
	"regexp"
	"strings"
)

// macroTypeMap maps route variable macros to OpenAPI type and format.
var macroTypeMap = map[string][2]string{
	"uuid":     {"string", "uuid"},
	"int":      {"integer", ""},
	"float":    {"number", ""},
	"slug":     {"string", ""},
	"alpha":    {"string", ""},
	"alphanum": {"string", ""},
	"date":     {"string", "date"},
	"hex":      {"string", ""},
	"domain":   {"string", "hostname"},
}

// pathVarRegexp matches route variables in the form {name} or {name:macro}.
var pathVarRegexp = regexp.MustCompile(`\{([^}]+)\}`)

// parsePath converts a route template to OpenAPI form and returns one path
// parameter per variable, in order of appearance. Unknown macros are typed as
// plain strings.
//
// See: https://spec.openapis.org/oas/v3.1.0#path-templating
func parsePath(tpl string) (string, []any) {
	var params []any

	openAPIPath := pathVarRegexp.ReplaceAllStringFunc(tpl, func(match string) string {
		inner := match[1 : len(match)-1]
		varName, macroName, _ := strings.Cut(inner, ":")

		schema := map[string]any{"type": "string"}
		if typeInfo, ok := macroTypeMap[macroName]; ok {
			schema = map[string]any{"type": typeInfo[0]}
			if typeInfo[1] != "" {
				schema["format"] = typeInfo[1]
			}
		}

		params = append(params, map[string]any{
			"name":     varName,
			"in":       "path",
			"required": true,
			"schema":   schema,
		})
		return "{" + varName + "}"
	})

	if openAPIPath == "" {
		openAPIPath = "/"
	}
	return openAPIPath, params
}
