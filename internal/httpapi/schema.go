package httpapi

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const addMemberSchemaPath = "schemas/add_member.json"

var errInvalidBody = errors.New("invalid request body")

var addMemberSchema = mustCompile(addMemberSchemaPath)

func mustCompile(path string) *jsonschema.Schema {
	raw, err := schemaFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", path, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(path, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", path, err))
	}
	schema, err := compiler.Compile(path)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", path, err))
	}
	return schema
}

// decodeValidated parses body, checks it against schema and returns the
// generic JSON value. Numbers are kept as json.Number.
func decodeValidated(schema *jsonschema.Schema, body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if err := schema.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errInvalidBody
	}
	return obj, nil
}
