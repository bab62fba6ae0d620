package promptstyle

import "strings"

const marker = "AICOURSE_PROMPT_STYLE_V1"

// ApplySystem prepends a short guidance block to a system prompt. It is a no-op on
// prompts that already carry the block.
func ApplySystem(system string, mode string) string {
	base := strings.TrimSpace(system)
	if base == "" || strings.Contains(base, marker) {
		return base
	}
	mode = strings.ToLower(strings.TrimSpace(mode))

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nYou are a careful assistant that prepares educational course content.")
	b.WriteString("\nFollow the system and user instructions precisely.")
	b.WriteString("\nUse only the provided script and metadata as grounding; do not invent facts.")
	switch mode {
	case "json":
		b.WriteString("\nReturn a single JSON object that conforms to the schema and contains no extra keys.")
		b.WriteString("\nNever translate or alter identifiers, UUIDs, field names, or enumerated values.")
	case "translate":
		b.WriteString("\nReturn only the translated text, without quotes or commentary.")
	default:
		b.WriteString("\nDo not add analysis or extra commentary.")
	}
	b.WriteString("\n---\n")
	b.WriteString(base)
	return strings.TrimSpace(b.String())
}
