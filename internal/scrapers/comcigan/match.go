package comcigan

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func normalizeName(name string) string {
	name = strings.ToLower(name)
	return whitespaceRegex.ReplaceAllString(name, "")
}

// BestMatch returns the entry whose name is most similar to query, ties go
// to the entry the service listed first.
func BestMatch(query string, entries []DirectoryEntry) (DirectoryEntry, bool) {
	if len(entries) == 0 {
		return DirectoryEntry{}, false
	}

	query = normalizeName(query)
	best := entries[0]
	bestScore := -1.0
	for _, e := range entries {
		score := matchr.JaroWinkler(query, normalizeName(e.Name), false)
		if score > bestScore {
			best = e
			bestScore = score
		}
	}
	return best, true
}
