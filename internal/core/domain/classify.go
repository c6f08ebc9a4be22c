package domain

import "strings"

// ClassifyForeignKey decides, from the column name alone, whether the column
// looks like a foreign key into one of the known tables. It recognizes the
// snake_case convention (user_id) and the camelCase convention (clientId).
// The returned name preserves the casing stored in tables. A column literally
// named "id" is the primary-key convention and is never classified.
func ClassifyForeignKey(columnName string, tables []TableDescriptor) (string, bool) {
	lower := strings.ToLower(columnName)
	if lower == "id" {
		return "", false
	}

	if strings.HasSuffix(lower, "_id") && len(lower) > 3 {
		if match, ok := matchCandidates(lower[:len(lower)-3], tables); ok {
			return match, true
		}
	}

	if strings.HasSuffix(lower, "id") && len(lower) > 2 {
		if match, ok := matchCandidates(lower[:len(lower)-2], tables); ok {
			return match, true
		}
	}

	return "", false
}

// matchCandidates tries the plural, bare, and naive-plural forms of base
// against the known tables, in that order.
func matchCandidates(base string, tables []TableDescriptor) (string, bool) {
	candidates := []string{Pluralize(base), base, base + "s"}
	for _, candidate := range candidates {
		for _, t := range tables {
			if strings.ToLower(t.Name) == candidate {
				return t.Name, true
			}
		}
	}
	return "", false
}
