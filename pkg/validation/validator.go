package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// CardValidator validates card documents against a compiled JSON Schema.
// It is safe for concurrent use.
type CardValidator struct {
	mode   Mode
	schema *jsonschema.Schema
}

// NewCardValidator compiles the schema for mode.
func NewCardValidator(mode Mode) (*CardValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("create.json", strings.NewReader(createCardSchema)); err != nil {
		return nil, fmt.Errorf("failed to add create schema: %w", err)
	}
	if err := compiler.AddResource("stored.json", strings.NewReader(storedCardSchema)); err != nil {
		return nil, fmt.Errorf("failed to add stored schema: %w", err)
	}

	url := "create.json"
	if mode == ModeStored {
		url = "stored.json"
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s schema: %w", mode, err)
	}
	return &CardValidator{mode: mode, schema: schema}, nil
}

// MustCardValidator is like NewCardValidator but panics on error. The schemas
// are compiled into the binary, so failure is a programming error.
func MustCardValidator(mode Mode) *CardValidator {
	v, err := NewCardValidator(mode)
	if err != nil {
		panic(err)
	}
	return v
}

// Mode returns the schema mode of the validator.
func (v *CardValidator) Mode() Mode {
	return v.mode
}

// ValidateJSON decodes data and validates it. A decode failure is returned as
// an error wrapping ErrInvalidJSON; schema failures are reported in the Result.
func (v *CardValidator) ValidateJSON(data []byte) (*Result, error) {
	doc, err := decode(data)
	if err != nil {
		return nil, err
	}
	return v.Validate(doc), nil
}

// Validate validates an already decoded JSON value.
func (v *CardValidator) Validate(doc interface{}) *Result {
	result := &Result{Valid: true}
	if err := v.schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			parseSchemaErrors(validationErr, result)
		} else {
			result.AddError(&FieldError{Code: ErrCodeSchema, Message: err.Error()})
		}
	}
	return result
}

func decode(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidJSON)
	}
	return doc, nil
}

// parseSchemaErrors flattens the leaf causes of a schema validation error.
func parseSchemaErrors(err *jsonschema.ValidationError, result *Result) {
	if len(err.Causes) == 0 {
		result.AddError(&FieldError{
			Field:   fieldFromPointer(err.InstanceLocation),
			Code:    ErrCodeSchema,
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		parseSchemaErrors(cause, result)
	}
}

// fieldFromPointer converts a JSON Pointer into dotted notation.
func fieldFromPointer(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	path = strings.TrimPrefix(path, "/")
	return strings.ReplaceAll(path, "/", ".")
}
