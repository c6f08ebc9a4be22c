package domain

import "strings"

// Pluralize turns a singular noun into its plural form using common English
// suffix rules. Best-effort only: true irregulars (child/children) are not
// handled, which is acceptable because the result is only ever compared
// against actual table names.
func Pluralize(word string) string {
	if word == "" {
		return word
	}

	if strings.HasSuffix(word, "y") && len(word) > 1 && !isVowel(word[len(word)-2]) {
		return word[:len(word)-1] + "ies"
	}
	if strings.HasSuffix(word, "s") || strings.HasSuffix(word, "x") ||
		strings.HasSuffix(word, "ch") || strings.HasSuffix(word, "sh") {
		return word + "es"
	}
	return word + "s"
}

// Singularize inverts the common cases of Pluralize: ies -> y, then a bare
// es or s suffix is stripped. Words that are not plural come back unchanged
// only when no suffix rule fires.
func Singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "es") && len(word) > 2:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && len(word) > 1:
		return word[:len(word)-1]
	}
	return word
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
