// internal/util/util.go
package util

import (
	"os"
	"strings"
	"unicode"
)

// WriteFile writes data to a file with 0o644 permissions.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// ToSnakeCase converts an identifier such as "Instance1Collective" or
// "My-Name" to "instance1_collective" / "my_name". Spaces and dashes
// become underscores, uppercase letters start a new word.
func ToSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	prevBreak := true
	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '_':
			if !prevBreak {
				b.WriteByte('_')
				prevBreak = true
			}
		case unicode.IsUpper(r):
			if !prevBreak {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevBreak = true
		default:
			b.WriteRune(r)
			prevBreak = false
		}
	}
	return strings.Trim(b.String(), "_")
}
