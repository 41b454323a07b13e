// internal/common/camunda/variables.go
package camunda

import (
	"encoding/json"
	"fmt"
	"strings"

	"insights-workers/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// DecodeVariables validates job variables against schema and unmarshals them
// into out. Failures are INVALID_INPUT errors. Process instances carry every
// variable in scope, so schemas should allow additional properties.
func DecodeVariables(variables, schema string, out interface{}) error {
	if strings.TrimSpace(variables) == "" {
		variables = "{}"
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(variables),
	)
	if err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("parse variables: %v", err))
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return errors.NewInvalidInputError(strings.Join(msgs, "; ")).
			WithMetadata("validationErrors", msgs)
	}

	if err := json.Unmarshal([]byte(variables), out); err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("decode variables: %v", err))
	}
	return nil
}
