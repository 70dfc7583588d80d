package gopher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/comp3310/gopherindex/logger"
)

// ParseMenu decodes a Gopher menu response body into a sequence of
// MenuEntry values, in source order. Malformed lines are skipped and
// logged rather than failing the whole directory: real servers
// routinely emit blank lines, headers, and the terminating "." line
// alongside valid entries.
func ParseMenu(body string, log logger.Logger) []MenuEntry {
	entries := make([]MenuEntry, 0)

	for _, line := range strings.Split(body, "\n") {
		if !strings.Contains(line, "\t") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			log.Warning(fmt.Errorf("%w: %q", ErrMalformedLine, line).Error())
			continue
		}

		if len(fields[0]) == 0 {
			log.Warning(fmt.Errorf("%w: %q", ErrMalformedLine, line).Error())
			continue
		}

		port, err := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err != nil {
			log.Severe(fmt.Errorf("%w: %q", ErrMalformedPort, line).Error())
			continue
		}

		entries = append(entries, MenuEntry{
			Type:     fields[0][0],
			Display:  fields[0][1:],
			Selector: fields[1],
			Host:     fields[2],
			Port:     port,
		})
	}

	return entries
}
