package preprocess

import (
	componentsgoerrors "github.com/jeswr/components-go/errors"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
)

// validateRawConfig enforces the canonical-config invariants from spec
// §3/§4.2, run after whichever preprocessor (or none) handled config.
func validateRawConfig(raw *resource.Resource) error {
	name, ok := raw.First(vocabulary.PredRequireName)
	if !ok {
		return componentsgoerrors.InvalidConfig(raw.ID, "requireName", "requireName is required")
	}
	if !name.IsLiteral() {
		return componentsgoerrors.InvalidConfig(raw.ID, "requireName", "requireName must be a Literal")
	}

	if element, ok := raw.First(vocabulary.PredRequireElement); ok && !element.IsLiteral() {
		return componentsgoerrors.InvalidConfig(raw.ID, "requireElement", "requireElement must be a Literal when present")
	}

	if noCtor, ok := raw.First(vocabulary.PredRequireNoConstructor); ok && !noCtor.IsLiteral() {
		return componentsgoerrors.InvalidConfig(raw.ID, "requireNoConstructor", "requireNoConstructor must be a Literal when present")
	}

	return nil
}
