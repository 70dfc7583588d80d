package gopher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const maxBasenameLength = 63

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9.-]`)

// Sanitize maps an arbitrary selector-derived fullPath to a
// collision-resistant, length-bounded local file path under
// downloadRoot. It is pure and deterministic: the same fullPath always
// produces the same result.
func Sanitize(downloadRoot, fullPath string) (string, error) {
	s := unsafeChars.ReplaceAllString(fullPath, "_")
	if len(s) <= maxBasenameLength {
		return filepath.Join(downloadRoot, s), nil
	}

	ext := ""
	base := s
	if dot := strings.LastIndex(s, "."); dot > 0 {
		ext = s[dot:]
		base = s[:dot]
	}

	h, err := shortHash(fullPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashUnavailable, err)
	}

	budget := maxBasenameLength - len(h) - len(ext)
	if budget < 0 {
		budget = 0
	}
	if len(base) > budget {
		base = base[:budget]
	}

	return filepath.Join(downloadRoot, base+h+ext), nil
}

func shortHash(fullPath string) (string, error) {
	sum := sha256.Sum256([]byte(fullPath))
	return hex.EncodeToString(sum[:])[:8], nil
}
