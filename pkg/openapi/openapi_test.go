package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/menucatch/pkg/openapi"
)

type status string

func TestSpecJSON(t *testing.T) {
	spec := openapi.NewSpec(openapi.Info{
		Title:       "MenuCatch API",
		Version:     "0.1.0",
		Description: "menu scans",
	}, "/api")
	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Outcome": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"status": openapi.EnumOf[status]("resolved", "skipped"),
				"score":  openapi.Range(0, 1),
			},
		},
	})
	spec.AddOperation("GET", "/scans/{id}", &openapi.Operation{
		Summary:    "Find",
		Parameters: []*openapi.Parameter{openapi.UUIDParam("id", "Session")},
		Responses:  map[int]*openapi.Response{200: openapi.ResponseJSON("ok", "Outcome")},
	})
	spec.AddOperation("DELETE", "/scans/{id}", &openapi.Operation{
		Responses: map[int]*openapi.Response{404: openapi.ResponseRef("NotFound")},
	})
	spec.AddOperation("PATCH", "/scans/{id}", &openapi.Operation{Summary: "ignored"})

	data, err := spec.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if doc["openapi"] != "3.1.0" {
		t.Errorf("openapi = %v", doc["openapi"])
	}

	item := doc["paths"].(map[string]any)["/scans/{id}"].(map[string]any)
	if len(item) != 2 {
		t.Errorf("path item has %d operations, want 2: %v", len(item), item)
	}

	get := item["get"].(map[string]any)
	param := get["parameters"].([]any)[0].(map[string]any)
	if param["in"] != "path" || param["required"] != true {
		t.Errorf("parameter = %v", param)
	}
	if format := param["schema"].(map[string]any)["format"]; format != "uuid" {
		t.Errorf("parameter format = %v, want uuid", format)
	}

	ref := get["responses"].(map[string]any)["200"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["schema"].(map[string]any)["$ref"]
	if ref != "#/components/schemas/Outcome" {
		t.Errorf("response ref = %v", ref)
	}

	components := doc["components"].(map[string]any)
	schemas := components["schemas"].(map[string]any)
	for _, name := range []string{"Error", "PageRequest", "Outcome"} {
		if _, ok := schemas[name]; !ok {
			t.Errorf("schema %s missing", name)
		}
	}

	props := schemas["Outcome"].(map[string]any)["properties"].(map[string]any)
	if enum := props["status"].(map[string]any)["enum"].([]any); len(enum) != 2 || enum[0] != "resolved" {
		t.Errorf("status enum = %v", enum)
	}
	if score := props["score"].(map[string]any); score["minimum"] != float64(0) || score["maximum"] != float64(1) {
		t.Errorf("score bounds = %v", score)
	}
}

func TestHandler(t *testing.T) {
	handler, err := openapi.Handler(openapi.NewSpec(openapi.Info{Title: "MenuCatch API", Version: "0.1.0"}))
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}

	var doc struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title string `json:"title"`
		} `json:"info"`
		Servers []any `json:"servers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.OpenAPI != openapi.Version || doc.Info.Title != "MenuCatch API" {
		t.Errorf("document = %+v", doc)
	}
	if doc.Servers != nil {
		t.Errorf("servers = %v, want omitted", doc.Servers)
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("MENUCATCH_TEST_OPENAPI_TITLE", "Scanner API")

	cfg := openapi.Config{}
	if err := cfg.Finalize(&openapi.ConfigEnv{Title: "MENUCATCH_TEST_OPENAPI_TITLE"}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Title != "Scanner API" {
		t.Errorf("title = %q, want Scanner API", cfg.Title)
	}
	if cfg.Description == "" {
		t.Error("description default not applied")
	}
}
