package task

import "golang.org/x/text/unicode/norm"

// NormalizeText puts s in Unicode NFC so that composed and decomposed forms
// of the same text store and match identically. Case is left untouched.
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}

// NormalizeTags NFC-normalizes every tag. A nil input yields an empty slice.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, NormalizeText(tag))
	}
	return out
}
