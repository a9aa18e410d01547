// internal/notify/templates.go
package notify

import (
	"fmt"
	"strings"
)

// ==========================
// Notification Types
// ==========================

const (
	TypeScoreReady      = "score_ready"
	TypeScoreOverridden = "score_overridden"
	TypeFMVUpdated      = "fmv_updated"
)

var templates = map[string]map[string]string{
	TypeScoreReady: {
		"subject": "Compliance review complete for your {{brandName}} deal",
		"body":    "Your {{dealType}} deal with {{brandName}} scored {{totalScore}} ({{status}}). Log in to review the details and next steps.",
	},
	TypeScoreOverridden: {
		"subject": "Compliance decision updated for your {{brandName}} deal",
		"body":    "A compliance officer reviewed your {{dealType}} deal with {{brandName}} and updated the decision to {{status}}.",
	},
	TypeFMVUpdated: {
		"subject": "Your fair market value estimate was refreshed",
		"body":    "Your updated NIL value tier is {{tier}} (factor {{fmvFactor}}). Check your dashboard for suggested deal ranges.",
	},
}

// renderTemplate substitutes {{key}} placeholders with values from
// data and strips any placeholder without a value.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		if s, ok := v.(string); ok {
			value = s
		} else if i, ok := v.(int); ok {
			value = fmt.Sprintf("%d", i)
		} else if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
}
