package services

import (
	"strings"
	"unicode"
)

// columnName folds a JSON-style key onto its snake_case column, so
// "isDeleted", "IsDeleted" and "is_deleted" all resolve to the same name.
// GORM's map Updates does the same resolution, so filtering must happen on
// the folded form.
func columnName(key string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range strings.TrimSpace(key) {
		if unicode.IsUpper(r) {
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
			continue
		}
		b.WriteRune(r)
		prevLower = r != '_'
	}
	return b.String()
}

// filterUpdates keeps only the allow-listed columns from a partial-update
// payload. Anything not on the list (identity, lifecycle flags, audit
// attribution) is silently dropped, under any key spelling.
func filterUpdates(updates map[string]interface{}, allowed map[string]bool) map[string]interface{} {
	filtered := make(map[string]interface{}, len(updates))
	for key, value := range updates {
		column := columnName(key)
		if allowed[column] {
			filtered[column] = value
		}
	}
	return filtered
}
