package dish

import (
	"sort"
	"strings"
)

// Match resolves a free-text prompt to the best knowledge-base entry, or nil
// when no dish is recognized. Callers must treat nil as "generic dish, no
// constraints", not as an error.
//
// Keys are scanned longest-first so an overlapping pair like "tonkotsu ramen"
// and "ramen" always resolves to the more specific dish. A first pass looks
// for the key as a contiguous substring; a second pass lets multi-word keys
// match when every constituent word appears somewhere in the prompt.
func (kb *KnowledgeBase) Match(prompt string) *Info {
	lowered := strings.ToLower(prompt)
	if strings.TrimSpace(lowered) == "" {
		return nil
	}

	for _, key := range kb.orderedKeys {
		if strings.Contains(lowered, key) {
			return kb.entries[key]
		}
	}

	for _, key := range kb.orderedKeys {
		words := strings.Fields(key)
		if len(words) < 2 {
			continue
		}
		all := true
		for _, word := range words {
			if !strings.Contains(lowered, word) {
				all = false
				break
			}
		}
		if all {
			return kb.entries[key]
		}
	}
	return nil
}

// sortKeysByPriority orders keys longest-first, breaking length ties
// alphabetically so iteration order never depends on the map.
func sortKeysByPriority(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
}
