// Package css provides the small subset of CSS parsing the layout and
// positioning code needs: inline declaration blocks and length values.
package css

import (
	"strings"
)

// Declaration is a single "property: value" pair from a declaration block.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// ParseDeclarations parses an inline declaration block such as the value of
// a style attribute. Malformed entries are skipped. Property names are
// normalised to lowercase kebab-case.
func ParseDeclarations(text string) []Declaration {
	var decls []Declaration
	for _, part := range strings.Split(text, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		colonIdx := strings.Index(part, ":")
		if colonIdx == -1 {
			continue
		}

		property := NormalizePropertyName(strings.TrimSpace(part[:colonIdx]))
		value := strings.TrimSpace(part[colonIdx+1:])
		if property == "" || value == "" {
			continue
		}

		important := false
		if idx := strings.LastIndex(value, "!"); idx != -1 {
			if strings.EqualFold(strings.TrimSpace(value[idx+1:]), "important") {
				important = true
				value = strings.TrimSpace(value[:idx])
			}
		}

		decls = append(decls, Declaration{Property: property, Value: value, Important: important})
	}
	return decls
}

// NormalizePropertyName converts camelCase to kebab-case and lowercases.
// Examples: "marginLeft" -> "margin-left", "overflowY" -> "overflow-y"
func NormalizePropertyName(name string) string {
	if name == "" {
		return ""
	}

	if strings.Contains(name, "-") || strings.ToUpper(name) == name {
		return strings.ToLower(name)
	}

	var result strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				result.WriteByte('-')
			}
			result.WriteByte(byte(r - 'A' + 'a'))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// CamelCase converts kebab-case to camelCase. It is used for dataset keys:
// "ui-placement" -> "uiPlacement".
func CamelCase(name string) string {
	parts := strings.Split(strings.TrimPrefix(name, "-"), "-")
	var result strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			result.WriteString(part)
		} else {
			result.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}
	return result.String()
}
