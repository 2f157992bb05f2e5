package util

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// FileStem returns the base name of path without its extension, reduced to
// characters that are safe in a file name.
func FileStem(path string) string {
	base := filepath.Base(strings.ReplaceAll(path, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var b strings.Builder
	for _, r := range base {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
