package registry

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	componentsgoerrors "github.com/jeswr/components-go/errors"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
)

// validateParameterRanges checks every component's declared parameters
// whose range carries a JSON Schema literal against that parameter's
// default value, mirroring the teacher's schema-exporter validation of
// a component's ConfigSchema against a meta-schema (spec §3 parameter
// range is otherwise descriptive only; this is an additive check run
// once at Finalize rather than per instantiation).
func validateParameterRanges(components map[string]*resource.Resource) error {
	for _, c := range components {
		params, ok := c.Property(vocabulary.PredParameters)
		if !ok {
			continue
		}
		for _, p := range params {
			if err := validateParameterRange(p); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateParameterRange(param *resource.Resource) error {
	rangeSchema, ok := param.First(vocabulary.PredParameterRange)
	if !ok || !rangeSchema.IsLiteral() || strings.TrimSpace(rangeSchema.Value) == "" {
		return nil
	}
	defaultValue, ok := param.First(vocabulary.PredParameterDefault)
	if !ok || !defaultValue.IsLiteral() {
		return nil
	}

	schemaLoader := gojsonschema.NewStringLoader(rangeSchema.Value)
	documentLoader := gojsonschema.NewStringLoader(jsonLiteral(defaultValue))

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return componentsgoerrors.InvalidComponent(param.ID,
			fmt.Sprintf("parameter range is not a valid JSON Schema: %s", err))
	}
	if !result.Valid() {
		var reasons []string
		for _, desc := range result.Errors() {
			reasons = append(reasons, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return componentsgoerrors.InvalidComponent(param.ID,
			fmt.Sprintf("default value does not satisfy declared range: %s", strings.Join(reasons, "; ")))
	}
	return nil
}

// jsonLiteral renders a Literal Resource's lexical value as a JSON
// document for schema validation: numeric/boolean XSD datatypes (the
// same IRIs strategy.DirectStrategy.CreatePrimitive recognises) pass
// through unquoted, everything else is treated as a JSON string.
func jsonLiteral(lit *resource.Resource) string {
	switch lit.Datatype {
	case "http://www.w3.org/2001/XMLSchema#boolean",
		"http://www.w3.org/2001/XMLSchema#integer",
		"http://www.w3.org/2001/XMLSchema#int",
		"http://www.w3.org/2001/XMLSchema#double",
		"http://www.w3.org/2001/XMLSchema#float":
		return lit.Value
	default:
		encoded, err := json.Marshal(lit.Value)
		if err != nil {
			return "null"
		}
		return string(encoded)
	}
}
