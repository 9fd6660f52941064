package api

import (
	"net/http"

	"github.com/JaimeStill/menucatch/internal/config"
	"github.com/JaimeStill/menucatch/internal/pipeline"
	"github.com/JaimeStill/menucatch/pkg/openapi"
)

type operation struct {
	method string
	path   string
	op     *openapi.Operation
}

func sessionParam() *openapi.Parameter {
	return openapi.UUIDParam("id", "Scan session ID")
}

func jsonResponses(description, schema string) map[int]*openapi.Response {
	return map[int]*openapi.Response{
		http.StatusOK:         openapi.ResponseJSON(description, schema),
		http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
		http.StatusNotFound:   openapi.ResponseRef("NotFound"),
	}
}

func operations() []operation {
	return []operation{
		{"GET", "/catalog/categories", &openapi.Operation{
			Summary:   "List categories with their foods",
			Tags:      []string{"Catalog"},
			Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("Categories", "Categories")},
		}},
		{"GET", "/catalog/foods", &openapi.Operation{
			Summary: "List foods",
			Tags:    []string{"Catalog"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Results per page", false),
				openapi.QueryParam("search", "string", "Name search", false),
				openapi.QueryParam("sort", "string", "Sort fields", false),
				openapi.QueryParam("category", "string", "Category filter", false),
				openapi.QueryParam("name", "string", "Exact name filter", false),
			},
			Responses: jsonResponses("Page of foods", "FoodPage"),
		}},
		{"POST", "/catalog/foods/search", &openapi.Operation{
			Summary:     "Search foods",
			Tags:        []string{"Catalog"},
			RequestBody: openapi.RequestBodyJSON("PageRequest", true),
			Responses:   jsonResponses("Page of foods", "FoodPage"),
		}},
		{"GET", "/catalog/foods/{id}", &openapi.Operation{
			Summary:    "Find a food",
			Tags:       []string{"Catalog"},
			Parameters: []*openapi.Parameter{openapi.UUIDParam("id", "Food ID")},
			Responses:  jsonResponses("Food", "Food"),
		}},
		{"POST", "/scans", &openapi.Operation{
			Summary: "Start a scan session",
			Tags:    []string{"Scans"},
			Responses: map[int]*openapi.Response{
				http.StatusCreated: openapi.ResponseJSON("Session", "Session"),
			},
		}},
		{"POST", "/scans/resolve", &openapi.Operation{
			Summary:     "Diagnose a single fragment",
			Tags:        []string{"Scans"},
			RequestBody: openapi.RequestBodyJSON("DiagnoseRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:                 openapi.ResponseJSON("Diagnosis", "Diagnosis"),
				http.StatusBadRequest:         openapi.ResponseRef("BadRequest"),
				http.StatusServiceUnavailable: openapi.ResponseRef("ServiceUnavailable"),
			},
		}},
		{"GET", "/scans/{id}", &openapi.Operation{
			Summary:    "Get a session and its records",
			Tags:       []string{"Scans"},
			Parameters: []*openapi.Parameter{sessionParam()},
			Responses:  jsonResponses("Session", "Session"),
		}},
		{"DELETE", "/scans/{id}", &openapi.Operation{
			Summary:    "Discard a session",
			Tags:       []string{"Scans"},
			Parameters: []*openapi.Parameter{sessionParam()},
			Responses: map[int]*openapi.Response{
				http.StatusNoContent: {Description: "Session discarded"},
				http.StatusNotFound:  openapi.ResponseRef("NotFound"),
			},
		}},
		{"POST", "/scans/{id}/batches", &openapi.Operation{
			Summary:     "Resolve a scanner batch into the session",
			Tags:        []string{"Scans"},
			Parameters:  []*openapi.Parameter{sessionParam()},
			RequestBody: openapi.RequestBodyJSON("BatchCommand", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:                 openapi.ResponseJSON("Batch report", "BatchReport"),
				http.StatusBadRequest:         openapi.ResponseRef("BadRequest"),
				http.StatusNotFound:           openapi.ResponseRef("NotFound"),
				http.StatusServiceUnavailable: openapi.ResponseRef("ServiceUnavailable"),
			},
		}},
		{"DELETE", "/scans/{id}/records", &openapi.Operation{
			Summary:    "Clear the session's records",
			Tags:       []string{"Scans"},
			Parameters: []*openapi.Parameter{sessionParam()},
			Responses:  jsonResponses("Session", "Session"),
		}},
		{"GET", "/scans/{id}/stream", &openapi.Operation{
			Summary:     "Stream session snapshots",
			Description: "Server-sent events. Each `snapshot` event carries the full session.",
			Tags:        []string{"Scans"},
			Parameters:  []*openapi.Parameter{sessionParam()},
			Responses: map[int]*openapi.Response{
				http.StatusOK: {Description: "text/event-stream of Session snapshots"},
			},
		}},
		{"GET", "/scans/{id}/archive", &openapi.Operation{
			Summary: "List archived batch reports",
			Tags:    []string{"Scans"},
			Parameters: []*openapi.Parameter{
				sessionParam(),
				openapi.QueryParam("marker", "string", "Continuation marker", false),
				openapi.QueryParam("max_results", "integer", "Page size", false),
			},
			Responses: jsonResponses("Archived batches", "BlobList"),
		}},
		{"GET", "/storage", &openapi.Operation{
			Summary: "Browse the batch archive",
			Tags:    []string{"Storage"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("prefix", "string", "Key prefix under scans/", false),
				openapi.QueryParam("marker", "string", "Continuation marker", false),
				openapi.QueryParam("max_results", "integer", "Page size", false),
			},
			Responses: jsonResponses("Archived blobs", "BlobList"),
		}},
		{"GET", "/storage/download/{key}", &openapi.Operation{
			Summary:    "Download an archived batch report",
			Tags:       []string{"Storage"},
			Parameters: []*openapi.Parameter{openapi.PathParam("key", "Blob key under scans/")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       {Description: "Batch report JSON as an attachment"},
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		}},
		{"GET", "/storage/{key}", &openapi.Operation{
			Summary:    "Describe an archived blob",
			Tags:       []string{"Storage"},
			Parameters: []*openapi.Parameter{openapi.PathParam("key", "Blob key under scans/")},
			Responses:  jsonResponses("Blob properties", "BlobMeta"),
		}},
	}
}

func schemas() map[string]*openapi.Schema {
	nutrient := func(desc string) *openapi.Schema {
		return &openapi.Schema{Type: "number", Description: desc}
	}

	return map[string]*openapi.Schema{
		"Food": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "string", Format: "uuid"},
				"category":       {Type: "string", Example: "음료류"},
				"name":           {Type: "string", Example: "아메리카노"},
				"position":       {Type: "integer"},
				"serving_size":   {Type: "number"},
				"serving_unit":   {Type: "string", Example: "ml"},
				"energy_kcal":    nutrient("Energy per serving"),
				"carbohydrate_g": nutrient("Carbohydrate in grams"),
				"protein_g":      nutrient("Protein in grams"),
				"fat_g":          nutrient("Fat in grams"),
				"sugars_g":       nutrient("Sugars in grams"),
				"caffeine_mg":    nutrient("Caffeine in milligrams"),
				"sodium_mg":      nutrient("Sodium in milligrams"),
			},
		},
		"FoodPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Food"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"Categories": {
			Type: "array",
			Items: &openapi.Schema{
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"name":  {Type: "string"},
					"foods": openapi.ArrayOf("Food"),
				},
			},
		},
		"Session": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"generation": {Type: "integer", Description: "Incremented on every clear"},
				"records":    {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"BatchCommand": {
			Type:     "object",
			Required: []string{"items"},
			Properties: map[string]*openapi.Schema{
				"items": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"id":   {Type: "string"},
							"text": {Type: "string"},
						},
					},
				},
			},
		},
		"Outcome": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"index":  {Type: "integer"},
				"text":   {Type: "string"},
				"status": openapi.EnumOf(pipeline.StatusResolved, pipeline.StatusSkipped),
				"reason": openapi.EnumOf(
					pipeline.SkipIneligible,
					pipeline.SkipClassifierFailed,
					pipeline.SkipNoCandidates,
					pipeline.SkipNotFound,
					pipeline.SkipLookupFailed,
				),
				"error":  {Type: "string"},
				"ranked": openapi.ArrayOf("RankedCategory"),
				"result": openapi.SchemaRef("Result"),
				"food":   openapi.SchemaRef("Food"),
			},
		},
		"BatchReport": {
			Type:        "object",
			Description: "Per-fragment outcomes and the records appended to the session",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"session_id":   {Type: "string", Format: "uuid"},
				"fragments":    {Type: "integer"},
				"resolved":     {Type: "integer"},
				"skipped":      {Type: "integer"},
				"discarded":    {Type: "integer", Description: "Resolved records dropped by a concurrent clear"},
				"outcomes":     openapi.ArrayOf("Outcome"),
				"records":      {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"archive_key":  {Type: "string"},
				"started_at":   {Type: "string", Format: "date-time"},
				"completed_at": {Type: "string", Format: "date-time"},
			},
		},
		"DiagnoseRequest": {
			Type:       "object",
			Required:   []string{"text"},
			Properties: map[string]*openapi.Schema{"text": {Type: "string"}},
		},
		"RankedCategory": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"category": {Type: "string"},
				"rank":     {Type: "integer", Description: "Classifier order, starting at 0"},
				"names":    {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"Candidate": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":     {Type: "string"},
				"category": {Type: "string"},
				"score":    openapi.Range(0, 1),
				"rank":     {Type: "integer"},
				"position": {Type: "integer"},
			},
		},
		"Result": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"winner":     openapi.SchemaRef("Candidate"),
				"candidates": openapi.ArrayOf("Candidate"),
			},
		},
		"Diagnosis": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"text":     {Type: "string"},
				"eligible": {Type: "boolean"},
				"ranked":   openapi.ArrayOf("RankedCategory"),
				"result":   openapi.SchemaRef("Result"),
			},
		},
		"BlobMeta": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"key":            {Type: "string"},
				"content_type":   {Type: "string"},
				"content_length": {Type: "integer"},
				"last_modified":  {Type: "string", Format: "date-time"},
			},
		},
		"BlobList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"blobs":       {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"next_marker": {Type: "string"},
			},
		},
	}
}

// buildSpec describes every route registered by registerRoutes.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(openapi.Info{
		Title:       cfg.API.OpenAPI.Title,
		Version:     cfg.Version,
		Description: cfg.API.OpenAPI.Description,
	}, cfg.API.BasePath)
	spec.Components.AddSchemas(schemas())

	for _, o := range operations() {
		spec.AddOperation(o.method, o.path, o.op)
	}

	return spec
}
