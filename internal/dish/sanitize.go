package dish

import "strings"

// Sanitize removes every forbidden-ingredient mention for the given dish from
// the candidate prompt. Removal is case-insensitive and whole-word, so a term
// embedded in a longer word ("garlicky") survives a "garlic" removal. A nil
// dish or a dish without forbidden ingredients returns the input unchanged.
//
// Removal runs to a fixpoint: collapsing the whitespace a removal leaves
// behind can rejoin surrounding words into a fresh occurrence of a multi-word
// term ("soy soy sauce sauce"), so one pass is not enough. The fixpoint makes
// the result free of every forbidden term and stable under re-sanitizing.
func Sanitize(prompt string, d *Info) string {
	if d == nil || len(d.forbiddenPatterns) == 0 {
		return prompt
	}
	cleaned := prompt
	for {
		next := cleaned
		for _, pattern := range d.forbiddenPatterns {
			next = pattern.ReplaceAllString(next, "")
		}
		next = tidy(next)
		if next == cleaned {
			return next
		}
		// Every change strictly shrinks the string, so this terminates.
		cleaned = next
	}
}

// tidy collapses the artifacts term removal leaves behind: doubled spaces,
// stranded commas, and dangling separators at either end.
func tidy(s string) string {
	s = collapseSpaces(s)
	s = strings.ReplaceAll(s, " ,", ",")
	for strings.Contains(s, ",,") {
		s = strings.ReplaceAll(s, ",,", ",")
	}
	s = collapseSpaces(s)
	s = strings.Trim(s, " ,")
	return s
}

func collapseSpaces(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}
