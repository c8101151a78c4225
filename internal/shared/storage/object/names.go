package object

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"strings"
	"unicode"
)

const maxFileNameRunes = 120

var errInvalidFileName = errors.New("invalid file name")

// UserNamespace is the key prefix for a user's uploads. User IDs never
// appear in keys directly.
func UserNamespace(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:16])
}

// SanitizeFileName flattens separators and control characters to "_" and
// rejects traversal. Long names are cut, keeping the extension.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if s == "" {
		return "", errInvalidFileName
	}
	if runes := []rune(s); len(runes) > maxFileNameRunes {
		ext := []rune(path.Ext(s))
		if len(ext) >= maxFileNameRunes {
			ext = nil
		}
		s = string(runes[:maxFileNameRunes-len(ext)]) + string(ext)
	}
	return s, nil
}
