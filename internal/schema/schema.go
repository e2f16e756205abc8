// Package schema compiles output contracts for stack descriptors. Contracts
// are authored as YAML or JSON schema documents next to each stack manifest.
package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// CompileFile loads and compiles a schema file (JSON or YAML).
func CompileFile(path string) (*jsonschema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read schema file")
	}
	return Compile(data, path)
}

// Compile parses raw schema bytes (YAML or JSON) and compiles them under the
// given name, which appears in validation diagnostics.
func Compile(raw []byte, name string) (*jsonschema.Schema, error) {
	// Parse YAML to interface{} (accepts both YAML and JSON).
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(err, "parse schema %s", name)
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal schema %s", name)
	}

	schemaURI := fmt.Sprintf("stackctl://%s/schema.json", name)
	compiler := jsonschema.NewCompiler()
	compiler.LoadURL = func(url string) (io.ReadCloser, error) {
		if url == schemaURI {
			return io.NopCloser(strings.NewReader(string(jsonData))), nil
		}
		return nil, fmt.Errorf("external schema reference not supported: %s", url)
	}

	compiled, err := compiler.Compile(schemaURI)
	if err != nil {
		return nil, errors.Wrapf(err, "compile schema %s", name)
	}
	return compiled, nil
}

// OutputContract builds the wrapper schema for a stack's outputs file: a JSON
// object with exactly one required top-level key equal to the stack name,
// whose value must satisfy the per-field schema.
func OutputContract(stackName string, fields map[string]interface{}) (*jsonschema.Schema, error) {
	doc := map[string]interface{}{
		"type":                 "object",
		"required":             []interface{}{stackName},
		"additionalProperties": false,
		"properties": map[string]interface{}{
			stackName: fields,
		},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal output contract for %s", stackName)
	}
	return Compile(raw, stackName+"/outputs")
}
