// Package intake owns the structured input fields attached to a kit: the
// schema they must satisfy and the shallow patch-merge used by the intake
// update endpoint.
package intake

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaJSON constrains every known intake field. Required fields are kept
// out of the base document so the same definitions back partial validation.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "company_name":        {"type": "string", "minLength": 1, "maxLength": 200},
    "company_website":     {"type": "string", "maxLength": 300},
    "company_description": {"type": "string", "maxLength": 2000},
    "industry":            {"type": "string", "maxLength": 120},
    "role_title":          {"type": "string", "minLength": 1, "maxLength": 200},
    "role_description":    {"type": "string", "maxLength": 5000},
    "seniority":           {"enum": ["junior", "mid", "senior", "lead", "executive"]},
    "employment_type":     {"enum": ["full_time", "part_time", "contract"]},
    "location":            {"type": "string", "maxLength": 200},
    "remote_policy":       {"enum": ["onsite", "hybrid", "remote"]},
    "salary_min":          {"type": "integer", "minimum": 0},
    "salary_max":          {"type": "integer", "minimum": 0},
    "team_size":           {"type": "integer", "minimum": 1},
    "start_date":          {"type": "string", "maxLength": 60},
    "must_have_skills":    {"type": "array", "items": {"type": "string"}, "maxItems": 25},
    "nice_to_have_skills": {"type": "array", "items": {"type": "string"}, "maxItems": 25},
    "benefits":            {"type": "array", "items": {"type": "string"}, "maxItems": 25},
    "tone":                {"enum": ["formal", "friendly", "bold"]}
  }
}`

const fullSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$ref": "intake.schema.json",
  "required": ["company_name", "role_title"]
}`

var (
	partialSchema *jsonschema.Schema
	fullSchema    *jsonschema.Schema
)

func init() {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource("intake.schema.json", strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("intake schema load failed: %v", err))
	}
	if err := c.AddResource("intake-full.schema.json", strings.NewReader(fullSchemaJSON)); err != nil {
		panic(fmt.Sprintf("intake full schema load failed: %v", err))
	}
	partialSchema = c.MustCompile("intake.schema.json")
	fullSchema = c.MustCompile("intake-full.schema.json")
}

// Merge overlays updates on top of existing at the top level only. Neither
// input is mutated.
func Merge(existing, updates map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(existing)+len(updates))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	return merged
}

// ValidatePartial checks field shapes without enforcing required fields.
// Used for patches and for kits still being filled in.
func ValidatePartial(data map[string]interface{}) error {
	return validate(partialSchema, data)
}

// ValidateFull additionally enforces the required fields a finished kit
// needs before document generation.
func ValidateFull(data map[string]interface{}) error {
	return validate(fullSchema, data)
}

func validate(schema *jsonschema.Schema, data map[string]interface{}) error {
	// Roundtrip through encoding/json so Go-native values (ints, typed
	// slices) validate the same as decoded request bodies.
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("intake data not serializable: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}
