package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseNoteID parses a note id argument.
func parseNoteID(command, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: invalid note id %q", command, raw)
	}
	return id, nil
}
