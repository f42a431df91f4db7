// internal/api/schemas.go
package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Request bodies are checked against JSON Schemas before any domain
// validation runs, so malformed shapes are rejected with a field-level
// message instead of a decode error.
const companyPredictSchema = `{
	"type": "object",
	"properties": {
		"company_name": {"type": "string", "minLength": 1},
		"financial_data": {
			"type": "object",
			"additionalProperties": {"type": "number"}
		}
	},
	"required": ["company_name", "financial_data"],
	"additionalProperties": false
}`

const individualPredictSchema = `{
	"type": "object",
	"properties": {
		"full_name": {"type": "string", "minLength": 1},
		"financial_data": {
			"type": "object",
			"additionalProperties": {"type": "number"}
		}
	},
	"required": ["full_name", "financial_data"],
	"additionalProperties": false
}`

var (
	companySchema    = gojsonschema.NewStringLoader(companyPredictSchema)
	individualSchema = gojsonschema.NewStringLoader(individualPredictSchema)
)

func validateSchema(schema gojsonschema.JSONLoader, body []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("request body validation failed: %s", strings.Join(msgs, "; "))
}

func validateCompanyPredictBody(body []byte) error {
	return validateSchema(companySchema, body)
}

func validateIndividualPredictBody(body []byte) error {
	return validateSchema(individualSchema, body)
}
