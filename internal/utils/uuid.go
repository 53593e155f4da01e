package utils

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxStorageNameLen bounds the client-supplied part of a storage key.
const maxStorageNameLen = 100

type UUIDGenerator struct {
	now func() time.Time
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{now: time.Now}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// StorageKey returns a fresh blob store key of the form
// "<unix-millis>-<uuid-v7>-<sanitized name>". The random part keeps keys
// unique even when two uploads share a name and a millisecond.
func (g *UUIDGenerator) StorageKey(fileName string) string {
	return strconv.FormatInt(g.now().UnixMilli(), 10) + "-" + g.Generate() + "-" + SanitizeFileName(fileName)
}

// SanitizeFileName reduces a client-supplied name to its base name and maps
// every byte outside [A-Za-z0-9._-] to '_'. The result never contains a path
// separator and is never empty.
func SanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		name = ""
	}

	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)

	if len(sanitized) > maxStorageNameLen {
		sanitized = sanitized[len(sanitized)-maxStorageNameLen:]
	}
	if strings.Trim(sanitized, "._") == "" {
		return "file"
	}

	return sanitized
}
