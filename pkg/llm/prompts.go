package llm

import (
	"fmt"
	"strings"
)

// ReportPlaceholder marks where the rendered report goes in a prompt template
const ReportPlaceholder = "{REPORT}"

// DefaultNarrationPromptTemplate is the default prompt template
// Variables available: {REPORT}
const DefaultNarrationPromptTemplate = `Product analyst: Read this weekly customer feedback summary and write short analyst notes for the product team.

RULES:
1. Use only the themes, counts, urgent items and recommendations in the summary
2. Do not invent customers, numbers or quotes
3. Call out the single most important action first
4. Mention any theme that is both frequent and negative
5. Keep it under 120 words

Format (use *text* for bold, not **text**):

*Headline:* one sentence
*Next steps:*
• Step 1
• Step 2

Summary:
{REPORT}

Notes:`

// ValidatePromptTemplate rejects a template that would send no report to the model
func ValidatePromptTemplate(template string) error {
	if !strings.Contains(template, ReportPlaceholder) {
		return fmt.Errorf("prompt template must contain %s", ReportPlaceholder)
	}
	return nil
}

// BuildNarrationPrompt creates the narration prompt shared across all
// providers. An empty template uses DefaultNarrationPromptTemplate.
func BuildNarrationPrompt(template, report string) string {
	if template == "" {
		template = DefaultNarrationPromptTemplate
	}
	return strings.ReplaceAll(template, ReportPlaceholder, report)
}
