package ai

import "strings"

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// Models often wrap JSON in ```json ... ``` fences even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// SplitSkillList parses a comma-separated skill response into a clean list:
// newlines count as separators, leading bullets and numbering are stripped,
// and empty items are dropped.
func SplitSkillList(text string) []string {
	text = strings.ReplaceAll(text, "\n", ",")

	skills := make([]string, 0)
	for _, raw := range strings.Split(text, ",") {
		s := strings.TrimSpace(raw)
		s = strings.TrimLeft(s, "•-0123456789. ")
		if s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
