package utils

import (
	"strings"
)

// EscapeMarkdown escaped spezielle Markdown-Zeichen
func EscapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		".", "\\.",
		"!", "\\!",
		"|", "\\|",
	)
	return replacer.Replace(text)
}

// EscapeTableCell macht Text tabellentauglich (keine Pipes, keine Zeilenumbrüche)
func EscapeTableCell(text string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"\r\n", " ",
		"\n", " ",
	)
	return replacer.Replace(text)
}

// TruncateText kürzt Text auf maximale Länge (in Zeichen, nicht Bytes)
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	if maxLength <= 3 {
		return string(runes[:max(maxLength, 0)])
	}

	return string(runes[:maxLength-3]) + "..."
}

// FormatBadge formatiert Werte als Markdown-Code-Badges
func FormatBadge(values ...string) string {
	var formatted []string
	for _, v := range values {
		if v == "" {
			continue
		}
		formatted = append(formatted, "`"+v+"`")
	}

	return strings.Join(formatted, " ")
}
