// Package requestschema checks request bodies against JSON schemas before
// they are decoded.
package requestschema

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

type Validator struct {
	schema *gojsonschema.Schema
}

// MustCompile panics on an invalid schema; schemas are compile-time constants
func MustCompile(source string) *Validator {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("invalid request schema: %v", err))
	}
	return &Validator{schema: schema}
}

// Validate returns one message per schema error, nil when body conforms
func (v *Validator) Validate(body []byte) ([]string, error) {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}
	messages := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		messages = append(messages, e.String())
	}
	return messages, nil
}
