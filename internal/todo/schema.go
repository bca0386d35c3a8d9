package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const snapshotSchemaURL = "snapshot.schema.json"

// SnapshotSchema describes the persisted task list.
const SnapshotSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "mywork task snapshot",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "completed"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string", "minLength": 1},
      "context": {"type": ["string", "null"]},
      "dueDate": {"type": ["string", "null"]},
      "completed": {"type": "boolean"},
      "overdue": {"type": ["boolean", "null"]}
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func snapshotSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(snapshotSchemaURL, strings.NewReader(SnapshotSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(snapshotSchemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidateSnapshot checks data against SnapshotSchema. A non-nil result is
// either a JSON syntax error or a joined list of *ValidationError.
func ValidateSnapshot(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}

	schema, err := snapshotSchema()
	if err != nil {
		return fmt.Errorf("compile snapshot schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var errs []error
		collectSchemaErrors(&errs, err)
		return errors.Join(errs...)
	}
	return nil
}

func collectSchemaErrors(errs *[]error, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		*errs = append(*errs, err)
		return
	}
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: instancePath(ve.InstanceLocation),
			Err:  errors.New(ve.Message),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// instancePath turns a JSON Pointer such as "/2/title" into "[2].title".
func instancePath(ptr string) string {
	var b strings.Builder
	for _, token := range strings.Split(strings.TrimPrefix(ptr, "#"), "/") {
		if token == "" {
			continue
		}
		token = pointerUnescaper.Replace(token)
		if idx, err := strconv.Atoi(token); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(token)
	}
	return b.String()
}
