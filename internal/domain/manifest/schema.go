package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed latest.schema.json
var schemaJSON string

var (
	//nolint:gochecknoglobals // Schema is compiled once and shared by every validation call.
	schemaOnce sync.Once
	//nolint:gochecknoglobals // Schema is compiled once and shared by every validation call.
	schema *jsonschema.Schema
	//nolint:gochecknoglobals // Schema is compiled once and shared by every validation call.
	schemaErr error
)

// compiledSchema compiles the embedded manifest schema on first use.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse manifest schema: %w", err)

			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("latest.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("register manifest schema: %w", err)

			return
		}

		schema, schemaErr = compiler.Compile("latest.schema.json")
	})

	return schema, schemaErr
}

// ValidateDocument checks a raw manifest document against the schema.
func ValidateDocument(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	if err := sch.Validate(instance); err != nil {
		return fmt.Errorf("manifest does not match schema: %w", err)
	}

	return nil
}
