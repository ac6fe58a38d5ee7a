package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"
)

// GetSwaggerSpecAsJSON returns the registered swag document.
func GetSwaggerSpecAsJSON() ([]byte, error) {
	doc, err := swag.ReadDoc()
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

// GetSwaggerSpecAsYAML converts the registered swag document to YAML.
func GetSwaggerSpecAsYAML() ([]byte, error) {
	jsonSpec, err := GetSwaggerSpecAsJSON()
	if err != nil {
		return nil, err
	}
	var spec interface{}
	if err := json.Unmarshal(jsonSpec, &spec); err != nil {
		return nil, err
	}
	return yaml.Marshal(spec)
}

// SwaggerHandler serves the OpenAPI document as JSON, or YAML when the client asks for it.
func SwaggerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Accept"), "yaml") {
			yamlSpec, err := GetSwaggerSpecAsYAML()
			if err != nil {
				_ = Error(w, http.StatusInternalServerError, "failed to render OpenAPI document")
				return
			}
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write(yamlSpec)
			return
		}

		jsonSpec, err := GetSwaggerSpecAsJSON()
		if err != nil {
			_ = Error(w, http.StatusInternalServerError, "failed to render OpenAPI document")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(jsonSpec)
	}
}

// SwaggerUIHandler serves Swagger UI pointed at specURL.
func SwaggerUIHandler(specURL string) http.HandlerFunc {
	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>LogPulse HR API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({ url: "` + specURL + `", dom_id: '#swagger-ui', deepLinking: true });
        };
    </script>
</body>
</html>`

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}
}
