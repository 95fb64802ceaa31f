// Package validate checks announcement requests before they reach the
// renderer.
//
// The renderer trusts what it receives: non-empty fields within length
// limits, a well-formed "NAME (NUMBER)" label and a real DD/MM/YYYY date.
// Validator is the capability the HTTP layer and the CLI call to establish
// that contract.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/youruser/comunicado/internal/announcement"
	apperr "github.com/youruser/comunicado/internal/errors"
)

// Validator accepts or rejects an announcement request.
type Validator interface {
	Validate(req announcement.Request) error
}

// Length limits, in characters.
const (
	MaxTextLength = 100
	MaxTierLength = 50

	MinYear = 1900
	MaxYear = 2100
)

var (
	subjectLabelPattern = regexp.MustCompile(`^.+\s\(\d+\)$`)
	datePattern         = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
)

// Schema is the default Validator. It reports every violation at once,
// joined with errors.Join; each one is an *apperr.FieldError.
type Schema struct{}

// Validate implements Validator.
func (Schema) Validate(req announcement.Request) error {
	var errs []error

	for _, f := range req.Fields() {
		limit := MaxTextLength
		if f.Name == "tier" {
			limit = MaxTierLength
		}
		if err := checkText(f.Name, f.Value, limit); err != nil {
			errs = append(errs, err)
		}
	}

	if req.SubjectLabel != "" && !subjectLabelPattern.MatchString(req.SubjectLabel) {
		errs = append(errs, fieldErr("subject_label", "expected format NAME (NUMBER)"))
	}
	if req.Date != "" {
		if err := checkDate(req.Date); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func checkText(field, value string, limit int) error {
	if strings.TrimSpace(value) == "" {
		return fieldErr(field, "must not be empty")
	}
	if n := utf8.RuneCountInString(value); n > limit {
		return fieldErr(field, fmt.Sprintf("too long (%d characters, max %d)", n, limit))
	}
	return nil
}

// checkDate accepts DD/MM/YYYY dates that exist on the calendar and fall
// within [MinYear, MaxYear].
func checkDate(value string) error {
	if !datePattern.MatchString(value) {
		return fieldErr("date", "expected format DD/MM/YYYY")
	}
	parts := strings.Split(value, "/")
	day, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])

	switch {
	case day < 1 || day > 31:
		return fieldErr("date", fmt.Sprintf("invalid day %d, must be between 1 and 31", day))
	case month < 1 || month > 12:
		return fieldErr("date", fmt.Sprintf("invalid month %d, must be between 1 and 12", month))
	case year < MinYear || year > MaxYear:
		return fieldErr("date", fmt.Sprintf("invalid year %d, must be between %d and %d", year, MinYear, MaxYear))
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return fieldErr("date", fmt.Sprintf("%s is not a calendar date", value))
	}
	return nil
}

func fieldErr(field, msg string) error {
	return &apperr.FieldError{Field: field, Message: msg}
}
