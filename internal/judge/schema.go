package judge

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/repograde/repograde/internal/models"
)

// defaultPrinter formats schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// scoreSchemas holds one compiled payload schema per category, built from
// the category's dimension list.
var scoreSchemas = map[models.Category]*jsonschema.Schema{}

func init() {
	for _, cat := range models.Categories() {
		name := fmt.Sprintf("%s.scores.schema.json", cat)
		scoreSchemas[cat] = mustCompileSchema(scorePayloadSchema(cat), name)
	}
}

// scorePayloadSchema builds the JSON schema document for one category's
// score submission: every dimension is a required integer in [0, 10], plus
// a required reasoning string.
func scorePayloadSchema(category models.Category) map[string]any {
	properties := map[string]any{
		"reasoning": map[string]any{
			"type":        "string",
			"description": "Short explanation of the scores",
		},
	}
	required := []any{"reasoning"}

	for _, dim := range category.Dimensions() {
		properties[dim] = map[string]any{
			"type":    "integer",
			"minimum": 0.0,
			"maximum": 10.0,
		}
		required = append(required, dim)
	}

	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func mustCompileSchema(doc map[string]any, name string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// validateScorePayload checks a raw score submission against the category's
// schema and returns human-readable violations.
func validateScorePayload(category models.Category, payload any) []string {
	schema, ok := scoreSchemas[category]
	if !ok {
		return []string{fmt.Sprintf("no schema for category %q", category)}
	}

	err := schema.Validate(payload)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
