package export

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxSheetNameLen = 31

var sheetNameReplacer = strings.NewReplacer(
	`\`, "_",
	"/", "_",
	"?", "_",
	"*", "_",
	"[", "_",
	"]", "_",
	":", "_",
)

// sheetNamer hands out worksheet names that are unique within a workbook.
// Excel compares sheet names case-insensitively.
type sheetNamer struct {
	taken map[string]bool
}

func newSheetNamer(reserved ...string) *sheetNamer {
	n := &sheetNamer{taken: make(map[string]bool)}
	for _, name := range reserved {
		n.taken[strings.ToLower(name)] = true
	}
	return n
}

func (n *sheetNamer) next(plate string, index int) string {
	base := plate
	if strings.TrimSpace(base) == "" {
		base = fmt.Sprintf("Vehicle_%d", index+1)
	}
	base = truncate(sheetNameReplacer.Replace(base), maxSheetNameLen)

	name := base
	for counter := 1; n.taken[strings.ToLower(name)]; counter++ {
		suffix := fmt.Sprintf("_%d", counter)
		name = truncate(base, maxSheetNameLen-len(suffix)) + suffix
	}
	n.taken[strings.ToLower(name)] = true
	return name
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
