package common

import (
	"path/filepath"
	"strings"
)

// IsImageFormat returns true if the file name has an extension of a format the caption bridge can decode.
func IsImageFormat(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	default:
		return false
	}
}
