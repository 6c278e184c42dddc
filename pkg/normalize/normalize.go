// Package normalize canonicalizes free-text identifiers so the same
// real-world entity can be matched across systems with different casing,
// diacritics and formatting conventions.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripper decomposes, drops combining marks, then recomposes. This turns
// an accented spelling into its plain ASCII-ish form ("José" -> "Jose").
var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name canonicalizes a person name for cross-system matching: diacritics
// stripped, surrounding whitespace trimmed. Idempotent.
func Name(raw string) string {
	stripped, _, err := transform.String(stripper, raw)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the input.
		stripped = raw
	}
	return strings.TrimSpace(stripped)
}

// ProjectRef is the cross-system identity of a project in one system:
// its system-local id plus the (name, code) match key.
type ProjectRef struct {
	ID   int64
	Name string
	Code string
}

// MatchProject resolves a (name, code) pair against a target system's
// project list. When both sides carry a non-empty code, name AND code must
// match case-insensitively; when the code is absent on either side, a
// case-insensitive name match suffices. The first match in list order
// wins; duplicate match keys are a data-quality defect this function does
// not resolve.
func MatchProject(targets []ProjectRef, name, code string) (int64, bool) {
	for _, t := range targets {
		if code != "" && t.Code != "" {
			if strings.EqualFold(t.Name, name) && strings.EqualFold(t.Code, code) {
				return t.ID, true
			}
		} else if strings.EqualFold(t.Name, name) {
			return t.ID, true
		}
	}
	return 0, false
}
