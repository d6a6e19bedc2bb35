package node

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"docbridge/internal/domain"
)

// mustCompileSchema builds a validator from an inline schema document.
// Schemas are package constants, so a compile failure is a programming
// error and panics at init.
func mustCompileSchema(doc map[string]any) *jsonschema.Schema {
	raw, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("marshaling parameter schema: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("params.json", bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("adding parameter schema: %v", err))
	}
	s, err := c.Compile("params.json")
	if err != nil {
		panic(fmt.Sprintf("compiling parameter schema: %v", err))
	}
	return s
}

// validateParams checks a parameter map against the node's schema. The map
// is round-tripped through JSON so that caller-supplied Go values validate
// the same way decoded request bodies do.
func validateParams(schema *jsonschema.Schema, p Params) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidParameters, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidParameters, err)
	}
	if v == nil {
		v = map[string]any{}
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidParameters, err)
	}
	return nil
}
