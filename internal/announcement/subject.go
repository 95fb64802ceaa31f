// Package announcement holds the announcement request model and the helpers
// that derive identity data from it: the Subject behind the composite
// "NAME (NUMBER)" label, the filesystem-safe name token and the output
// filename.
package announcement

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	apperr "github.com/youruser/comunicado/internal/errors"
)

// subjectPattern matches "NAME (NUMBER)": one or more characters, a single
// whitespace, then a parenthesized run of digits ending the string.
var subjectPattern = regexp.MustCompile(`^(.+)\s\((\d+)\)$`)

// ExtractSubject parses req.SubjectLabel into a Subject.
// A label that does not match the composite pattern is an INVALID_FORMAT
// error; a partial Subject is never returned.
func ExtractSubject(req Request) (Subject, error) {
	m := subjectPattern.FindStringSubmatch(req.SubjectLabel)
	if m == nil {
		return Subject{}, apperr.New(apperr.ErrCodeInvalidFormat,
			"subject label %q does not match required pattern \"NAME (NUMBER)\"", req.SubjectLabel)
	}
	id, err := strconv.Atoi(m[2])
	if err != nil {
		return Subject{}, apperr.Wrap(apperr.ErrCodeInvalidFormat, err,
			"subject number %q out of range", m[2])
	}
	return Subject{
		DisplayName: strings.TrimSpace(m[1]),
		ID:          id,
		Tier:        req.Tier,
		Location:    req.Location,
	}, nil
}

// NormalizeToken strips accents and every character that is not an ASCII
// letter or digit, then uppercases the result: "JOSÉ DA CONCEIÇÃO" becomes
// "JOSEDACONCEICAO". An empty or all-symbol name yields "".
func NormalizeToken(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, name)
	if err != nil {
		// transform only fails on invalid chains; fall back to the raw input
		stripped = name
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
