package indexer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/comp3310/gopherindex/gopher"
	"github.com/comp3310/gopherindex/logger"
)

// stripTrailingTerminator removes a Gopher end-of-text marker from a
// decoded type-0 payload, if the server included one. Binary payloads
// never go through this.
func stripTrailingTerminator(text string) string {
	if strings.HasSuffix(text, ".\n") {
		return text[:len(text)-2]
	}
	if strings.HasSuffix(text, ".") {
		return text[:len(text)-1]
	}
	return text
}

// writeResource persists payload to the sanitized path derived from
// fullPath under downloadRoot, creating parent directories as needed.
// It returns the on-disk size, or 0 on any I/O error (logged at
// severe) — callers treat 0 as "did not count as a successful fetch".
func writeResource(log logger.Logger, downloadRoot, fullPath string, payload []byte) (localPath string, size int64) {
	safePath, err := gopher.Sanitize(downloadRoot, fullPath)
	if err != nil {
		log.Severe("failed to sanitize path for " + fullPath + ": " + err.Error())
		return "", 0
	}

	if err := os.MkdirAll(filepath.Dir(safePath), 0o755); err != nil {
		log.Severe("failed to create directories for " + safePath + ": " + err.Error())
		return "", 0
	}

	if err := os.WriteFile(safePath, payload, 0o644); err != nil {
		log.Severe("failed to write file " + safePath + ": " + err.Error())
		return "", 0
	}

	info, err := os.Stat(safePath)
	if err != nil {
		log.Severe("failed to stat written file " + safePath + ": " + err.Error())
		return "", 0
	}

	return safePath, info.Size()
}
