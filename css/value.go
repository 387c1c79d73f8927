package css

import (
	"strconv"
	"strings"
)

// ParseLength parses a pixel length. Unitless numbers and "px" values are
// accepted; anything else (auto, percentages, empty) reports ok=false.
func ParseLength(value string) (float64, bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return 0, false
	}
	value = strings.TrimSuffix(value, "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// LengthOr parses value as a pixel length, falling back to def.
func LengthOr(value string, def float64) float64 {
	if f, ok := ParseLength(value); ok {
		return f
	}
	return def
}

// Px formats a pixel length the way inline styles are written back.
func Px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ExpandBox expands a 1–4 value box shorthand (margin, padding) into
// top, right, bottom, left components.
func ExpandBox(value string) (top, right, bottom, left string) {
	parts := strings.Fields(value)
	switch len(parts) {
	case 1:
		return parts[0], parts[0], parts[0], parts[0]
	case 2:
		return parts[0], parts[1], parts[0], parts[1]
	case 3:
		return parts[0], parts[1], parts[2], parts[1]
	case 4:
		return parts[0], parts[1], parts[2], parts[3]
	}
	return "", "", "", ""
}

// ParseTranslate extracts the translation of a transform value. Only
// translate, translate3d, translateX and translateY functions are
// understood; other functions are ignored.
func ParseTranslate(value string) (x, y float64) {
	rest := strings.TrimSpace(strings.ToLower(value))
	for rest != "" {
		open := strings.Index(rest, "(")
		closing := strings.Index(rest, ")")
		if open == -1 || closing < open {
			break
		}
		name := strings.TrimSpace(rest[:open])
		args := strings.Split(rest[open+1:closing], ",")
		rest = strings.TrimSpace(rest[closing+1:])

		switch name {
		case "translate", "translate3d":
			x += LengthOr(args[0], 0)
			if len(args) > 1 {
				y += LengthOr(args[1], 0)
			}
		case "translatex":
			x += LengthOr(args[0], 0)
		case "translatey":
			y += LengthOr(args[0], 0)
		}
	}
	return x, y
}

// Translate3d formats a GPU translation.
func Translate3d(x, y float64) string {
	return "translate3d(" + Px(x) + ", " + Px(y) + ", 0)"
}
