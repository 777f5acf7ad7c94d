package notation

import (
	"regexp"
	"strings"
)

// DefaultColor replaces colour values that fail sanitizing.
const DefaultColor = "#000000"

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var namedColors = map[string]struct{}{
	"black": {}, "white": {}, "red": {}, "green": {}, "blue": {},
	"yellow": {}, "orange": {}, "purple": {}, "pink": {}, "gray": {},
	"grey": {}, "cyan": {}, "magenta": {}, "brown": {}, "navy": {},
	"teal": {}, "lime": {}, "olive": {}, "maroon": {}, "silver": {},
}

// SanitizeColor returns value when it is a #RGB or #RRGGBB hex colour or a
// known colour name, and [DefaultColor] otherwise. Fullwidth input is
// folded first.
func SanitizeColor(value string) string {
	v := NormalizeKeyword(value)

	if hexColor.MatchString(v) {
		return v
	}

	if _, ok := namedColors[v]; ok {
		return v
	}

	return DefaultColor
}

// sanitizeText strips control characters other than tab and newline.
func sanitizeText(s string) string {
	return strings.Map(func(r rune) rune {
		if (r < 0x20 && r != '\t' && r != '\n') || r == 0x7f {
			return -1
		}

		return r
	}, s)
}
