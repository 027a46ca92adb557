package assist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/morphedb/morphe/schema"
)

// BuildConversionPrompt renders the instruction sent to the collaborator
// for an AI-assisted conversion. The canonical model is embedded as JSON
// and the reply is constrained to the Response shape.
func BuildConversionPrompt(m *schema.Model, targetDialect string) (string, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("assist: marshaling model: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("You are a database schema conversion engine.\n\n")
	fmt.Fprintf(&sb, "Convert the following canonical schema graph into %s data-definition statements.\n\n", targetDialect)
	sb.WriteString("Canonical schema (entities, attributes, relationships):\n")
	sb.Write(payload)
	sb.WriteString("\n\nRules:\n")
	fmt.Fprintf(&sb, "- Emit one definition per entity using idiomatic %s syntax.\n", targetDialect)
	sb.WriteString("- Primary-key attributes use the target dialect's identity/auto-increment idiom.\n")
	sb.WriteString("- Preserve unique and not-null constraints, and emit a foreign-key reference for every relationship.\n")
	sb.WriteString("- Produce one explanation record per attribute.\n\n")
	sb.WriteString("Respond with a single JSON object, no prose, of the shape:\n")
	sb.WriteString(`{"ddl": "...", "explanations": [{"entity": "...", "attribute": "...", "sourceType": "...", "targetType": "...", "reason": "..."}]}`)
	sb.WriteString("\n")
	return sb.String(), nil
}
