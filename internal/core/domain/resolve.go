package domain

import "strings"

// ResolveTableName maps a guessed table name (possibly wrong in case,
// plurality, or prefixing) to an actual table name. Strategies are tried in
// order and the first hit wins; when everything misses the guess is returned
// unchanged, so callers must expect the subsequent lookup to fail against
// the real schema.
func ResolveTableName(guess string, tables []TableDescriptor) string {
	lower := strings.ToLower(guess)
	singular := Singularize(lower)

	if name, ok := exactMatch(lower, tables); ok {
		return name
	}
	if name, ok := exactMatch(singular, tables); ok {
		return name
	}
	if name, ok := suffixMatch(lower, tables); ok {
		return name
	}
	if name, ok := suffixMatch(singular, tables); ok {
		return name
	}

	// Fuzzy fallback: compare bare roots with plural suffixes and
	// underscores stripped. First table in list order wins; no similarity
	// ranking is attempted.
	root := strings.ReplaceAll(stripPluralSuffix(lower), "_", "")
	if root != "" {
		for _, t := range tables {
			if strings.Contains(strings.ToLower(t.Name), root) {
				return t.Name
			}
		}
	}

	return guess
}

func exactMatch(name string, tables []TableDescriptor) (string, bool) {
	for _, t := range tables {
		if strings.ToLower(t.Name) == name {
			return t.Name, true
		}
	}
	return "", false
}

// suffixMatch finds a table whose name ends with "_"+name or with name
// itself, e.g. guess "orders" against "shop_orders".
func suffixMatch(name string, tables []TableDescriptor) (string, bool) {
	for _, t := range tables {
		tn := strings.ToLower(t.Name)
		if strings.HasSuffix(tn, "_"+name) || strings.HasSuffix(tn, name) {
			return t.Name, true
		}
	}
	return "", false
}

func stripPluralSuffix(s string) string {
	switch {
	case strings.HasSuffix(s, "ies"):
		return s[:len(s)-3]
	case strings.HasSuffix(s, "es"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "s"):
		return s[:len(s)-1]
	}
	return s
}
