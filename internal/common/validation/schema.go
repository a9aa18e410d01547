package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationResult reports the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks a document against a JSON schema expressed as a Go map.
func Validate(document map[string]interface{}, schema map[string]interface{}) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return &ValidationResult{Valid: true}, nil
	}

	out := &ValidationResult{Valid: false}
	for _, resErr := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   resErr.Field(),
			Message: resErr.Description(),
		})
	}
	return out, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// Summary joins all error messages into one string for error details.
func (vr *ValidationResult) Summary() string {
	return strings.Join(vr.GetErrorMessages(), "; ")
}

// DealSchema is the JSON schema used to validate deal submissions.
var DealSchema = map[string]interface{}{
	"type": "object",
	"required": []interface{}{
		"athleteId", "brandName", "dealType", "compensationAmount",
	},
	"properties": map[string]interface{}{
		"dealId": map[string]interface{}{
			"type": "string",
		},
		"campaignId": map[string]interface{}{
			"type": "string",
		},
		"athleteId": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"brandName": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
			"maxLength": 255,
		},
		"brandCategory": map[string]interface{}{
			"type": "string",
		},
		"dealType": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{
				"endorsement", "appearance", "social_media",
				"autograph", "merchandise", "camp", "other",
			},
		},
		"compensationAmount": map[string]interface{}{
			"type":    "number",
			"minimum": 0,
		},
		"description": map[string]interface{}{
			"type":      "string",
			"maxLength": 5000,
		},
		"deliverables": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "string",
			},
		},
		"startDate": map[string]interface{}{
			"type":   "string",
			"format": "date",
		},
		"endDate": map[string]interface{}{
			"type":   "string",
			"format": "date",
		},
		"usesSchoolMarks": map[string]interface{}{
			"type": "boolean",
		},
		"contractDocumentId": map[string]interface{}{
			"type": "string",
		},
	},
	"additionalProperties": false,
}

// OverrideSchema is the JSON schema used to validate override requests.
var OverrideSchema = map[string]interface{}{
	"type": "object",
	"required": []interface{}{
		"status", "justification",
	},
	"properties": map[string]interface{}{
		"dealId": map[string]interface{}{
			"type": "string",
		},
		"status": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"green", "yellow"},
		},
		"justification": map[string]interface{}{
			"type":      "string",
			"minLength": 50,
		},
		"notifyAthlete": map[string]interface{}{
			"type": "boolean",
		},
	},
	"additionalProperties": false,
}
