package openapi

const (
	schemaPrefix   = "#/components/schemas/"
	responsePrefix = "#/components/responses/"
	jsonMedia      = "application/json"
)

// SchemaRef refers to a component schema by name.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: schemaPrefix + name}
}

// ResponseRef refers to a component response by name.
func ResponseRef(name string) *Response {
	return &Response{Ref: responsePrefix + name}
}

// ArrayOf is an array schema of the named component.
func ArrayOf(name string) *Schema {
	return &Schema{Type: "array", Items: SchemaRef(name)}
}

// EnumOf is a string schema restricted to values.
func EnumOf[T ~string](values ...T) *Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = string(v)
	}
	return &Schema{Type: "string", Enum: enum}
}

// Range is a number schema bounded by lo and hi inclusive.
func Range(lo, hi float64) *Schema {
	return &Schema{Type: "number", Minimum: &lo, Maximum: &hi}
}

// RequestBodyJSON is a JSON request body of the named component schema.
func RequestBodyJSON(schemaName string, required bool) *RequestBody {
	return &RequestBody{
		Required: required,
		Content:  map[string]*MediaType{jsonMedia: {Schema: SchemaRef(schemaName)}},
	}
}

// ResponseJSON is a JSON response of the named component schema.
func ResponseJSON(description, schemaName string) *Response {
	return &Response{
		Description: description,
		Content:     map[string]*MediaType{jsonMedia: {Schema: SchemaRef(schemaName)}},
	}
}

// UUIDParam is a required path parameter holding a UUID.
func UUIDParam(name, description string) *Parameter {
	p := PathParam(name, description)
	p.Schema.Format = "uuid"
	return p
}

// PathParam is a required string path parameter.
func PathParam(name, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "path",
		Required:    true,
		Description: description,
		Schema:      &Schema{Type: "string"},
	}
}

// QueryParam is a query parameter of the given JSON type.
func QueryParam(name, typ, description string, required bool) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "query",
		Required:    required,
		Description: description,
		Schema:      &Schema{Type: typ},
	}
}
