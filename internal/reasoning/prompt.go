package reasoning

import (
	"fmt"
	"strings"
)

const instructions = `You are an aviation safety analyst applying the Human
Factors Analysis and Classification System (HFACS) to UAV accident
narratives. For every category listed below, judge whether the narrative
contains evidence of that factor. Base each judgment strictly on the
narrative text; do not speculate beyond what is written.`

const judgeSpec = `Respond with a JSON object matching this exact structure:

{
  "results": [
    {
      "category_id": "<code>",
      "present": false,
      "confidence": 0.0,
      "rationale": "<explanation>"
    }
  ]
}

Field constraints:
- category_id: The category code exactly as listed in the prompt.
- present: Whether the narrative contains evidence of this factor.
- confidence: Numeric certainty of the judgment in [0.0, 1.0]. High
  confidence requires direct textual evidence; indirect inference should
  score below 0.5.
- rationale: Brief explanation citing the narrative evidence for the
  judgment. May be empty for categories with no relevant content.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Include exactly one result per listed category, no more, no fewer
- Never invent category codes that were not listed
- A category with present=false still requires a confidence value
  reflecting certainty of its absence`

// ComposePrompt builds the judgment prompt: analyst instructions, the
// category listing, the immutable response spec, and the narrative.
func ComposePrompt(req *Request) string {
	var sb strings.Builder

	sb.WriteString(instructions)
	sb.WriteString("\n\nCategories:\n")

	for _, c := range req.Categories {
		fmt.Fprintf(&sb, "- %s (level %d): %s\n", c.Code, c.Level, c.Name)
	}

	sb.WriteString("\n")
	sb.WriteString(judgeSpec)
	sb.WriteString("\n\nNarrative:\n")
	sb.WriteString(req.Narrative)

	return sb.String()
}
