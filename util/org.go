package util

import "strings"

// NormalizeIdentity trims surrounding whitespace from a member identity.
// Identities are case-sensitive, so nothing else is changed.
func NormalizeIdentity(id string) string {
	return strings.TrimSpace(id)
}

// NormalizeIdentities normalizes a slice of identities, dropping blanks
func NormalizeIdentities(ids []string) []string {
	if ids == nil {
		return []string{}
	}

	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = NormalizeIdentity(id); id != "" {
			normalized = append(normalized, id)
		}
	}
	return normalized
}
