package handler

import (
	_ "embed"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"
)

//go:embed docs/openapi.yaml
var openAPIYAML []byte

// OpenAPIYAML handles GET /api-docs/openapi.yaml
func (h *Handler) OpenAPIYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openAPIYAML)
}

// OpenAPIJSON handles GET /api-docs/openapi.json
func (h *Handler) OpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := openAPIDocument()
	if err != nil {
		h.writeErr(w, r, err, "Failed to render API documentation")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func openAPIDocument() (interface{}, error) {
	var doc interface{}
	if err := yaml.Unmarshal(openAPIYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	return jsonCompatible(doc), nil
}

// jsonCompatible rewrites map[interface{}]interface{} nodes, which encoding/json rejects.
func jsonCompatible(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = jsonCompatible(val)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out
	case []interface{}:
		for i, val := range t {
			t[i] = jsonCompatible(val)
		}
		return t
	}
	return v
}
