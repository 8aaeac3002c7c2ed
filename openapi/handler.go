package openapi

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"sync"
)

// Router is implemented by *http.ServeMux and compatible routers.
type Router interface {
	HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request))
}

// HandleConfig configures the endpoints registered by Handle.
type HandleConfig struct {
	// Title overrides the HTML page title (default: spec info.title).
	Title string

	// JSONFilename is the path of the JSON endpoint (default: "schema.json").
	// Relative names are joined with the base path, absolute names are used
	// as-is. Set to "-" to disable.
	JSONFilename string

	// YAMLFilename is the path of the YAML endpoint (default: "schema.yaml").
	// Follows the same rules as JSONFilename.
	YAMLFilename string

	// DisableDocs disables the interactive HTML docs endpoint.
	DisableDocs bool
}

func (cfg HandleConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "schema.json"
	}
	return cfg.JSONFilename
}

func (cfg HandleConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "schema.yaml"
	}
	return cfg.YAMLFilename
}

// resolvePath returns the full route path for a filename.
func resolvePath(basePath, filename string) string {
	if strings.HasPrefix(filename, "/") {
		return filename
	}
	return basePath + "/" + filename
}

// Handle registers the documentation endpoints under basePath:
//
//	<basePath>/            - Swagger UI (unless DisableDocs)
//	<basePath>/schema.json - document as JSON
//	<basePath>/schema.yaml - document as YAML
//
// Pass nil cfg for defaults. Each endpoint builds the document once, on its
// first request, and serves the cached bytes afterwards.
func (s *Spec) Handle(r Router, basePath string, cfg *HandleConfig) {
	if cfg == nil {
		cfg = &HandleConfig{}
	}
	basePath = strings.TrimRight(basePath, "/")

	var jsonPath, yamlPath string

	if name := cfg.jsonFilename(); name != "-" {
		jsonPath = resolvePath(basePath, name)
		r.HandleFunc(jsonPath, s.serveEncoded("application/json", s.JSON))
	}

	if name := cfg.yamlFilename(); name != "-" {
		yamlPath = resolvePath(basePath, name)
		r.HandleFunc(yamlPath, s.serveEncoded("application/x-yaml", s.YAML))
	}

	if cfg.DisableDocs {
		return
	}

	specURL := jsonPath
	if specURL == "" {
		specURL = yamlPath
	}
	if specURL == "" {
		return
	}

	title := cfg.Title
	if title == "" {
		title = s.info.Title
	}
	docs := s.serveDocs(title, specURL)
	if basePath == "" {
		r.HandleFunc("/", docs)
		return
	}
	r.HandleFunc(basePath, docs)
	r.HandleFunc(basePath+"/", docs)
}

// serveEncoded returns a handler serving the output of encode, computed once.
// A panic raised while building is reported as a 500.
func (s *Spec) serveEncoded(contentType string, encode func() ([]byte, error)) http.HandlerFunc {
	var (
		once     sync.Once
		data     []byte
		buildErr error
	)
	return func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() {
			defer func() {
				if rv := recover(); rv != nil {
					buildErr = fmt.Errorf("build openapi document: %v", rv)
				}
			}()
			data, buildErr = encode()
		})
		if buildErr != nil {
			http.Error(w, "failed to serialize OpenAPI document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func (s *Spec) serveDocs(title, specURL string) http.HandlerFunc {
	page := []byte(swaggerUIPage(title, specURL))
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(page)
	}
}

func swaggerUIPage(title, specURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: %q, dom_id: "#swagger-ui"});
</script>
</body>
</html>`, html.EscapeString(title), specURL)
}
