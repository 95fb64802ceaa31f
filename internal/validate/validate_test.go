package validate

import (
	"strings"
	"testing"

	"github.com/youruser/comunicado/internal/announcement"
	apperr "github.com/youruser/comunicado/internal/errors"
)

func validRequest() announcement.Request {
	return announcement.Request{
		Source:       "EXPANSÃO",
		EventType:    "CONCLUSÃO DE ESTÁGIO",
		SubjectLabel: "XANDECO (183)",
		Outcome:      "SEM APROVEITAMENTO:",
		Location:     "EXPANSÃO REGIONAL",
		Tier:         "GRAU V",
		Date:         "04/11/2025",
	}
}

func TestSchemaAcceptsValid(t *testing.T) {
	var v Validator = Schema{}
	if err := v.Validate(validRequest()); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestSchemaRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*announcement.Request)
		field  string
	}{
		{"empty source", func(r *announcement.Request) { r.Source = "" }, "source"},
		{"blank event", func(r *announcement.Request) { r.EventType = "   " }, "event_type"},
		{"long outcome", func(r *announcement.Request) { r.Outcome = strings.Repeat("A", 101) }, "outcome"},
		{"long tier", func(r *announcement.Request) { r.Tier = strings.Repeat("V", 51) }, "tier"},
		{"label without number", func(r *announcement.Request) { r.SubjectLabel = "XANDECO" }, "subject_label"},
		{"label letters in number", func(r *announcement.Request) { r.SubjectLabel = "XANDECO (1A)" }, "subject_label"},
		{"date iso", func(r *announcement.Request) { r.Date = "2025-11-04" }, "date"},
		{"date short year", func(r *announcement.Request) { r.Date = "04/11/25" }, "date"},
		{"day zero", func(r *announcement.Request) { r.Date = "00/11/2025" }, "date"},
		{"day 32", func(r *announcement.Request) { r.Date = "32/01/2025" }, "date"},
		{"month 13", func(r *announcement.Request) { r.Date = "01/13/2025" }, "date"},
		{"year 1899", func(r *announcement.Request) { r.Date = "01/01/1899" }, "date"},
		{"year 2101", func(r *announcement.Request) { r.Date = "01/01/2101" }, "date"},
		{"feb 31", func(r *announcement.Request) { r.Date = "31/02/2025" }, "date"},
		{"feb 29 non leap", func(r *announcement.Request) { r.Date = "29/02/2025" }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := Schema{}.Validate(req)
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !apperr.Is(err, apperr.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want INVALID_INPUT", apperr.GetCode(err))
			}
			fields := apperr.FieldErrors(err)
			if len(fields) != 1 || fields[0].Field != tt.field {
				t.Errorf("field errors = %v, want one on %q", fields, tt.field)
			}
		})
	}
}

func TestSchemaLimitsCountCharacters(t *testing.T) {
	req := validRequest()
	req.Location = strings.Repeat("Ã", MaxTextLength)
	req.Tier = strings.Repeat("É", MaxTierLength)

	if err := (Schema{}).Validate(req); err != nil {
		t.Errorf("Validate() error = %v, multibyte text at the limit should pass", err)
	}
}

func TestSchemaLeapDay(t *testing.T) {
	req := validRequest()
	req.Date = "29/02/2024"
	if err := (Schema{}).Validate(req); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestSchemaCollectsAll(t *testing.T) {
	req := announcement.Request{SubjectLabel: "BAD", Date: "99/99/9999"}

	err := Schema{}.Validate(req)
	fields := apperr.FieldErrors(err)

	// five empty fields, the bad label and the bad date
	if len(fields) != 7 {
		t.Fatalf("got %d field errors, want 7: %v", len(fields), err)
	}
	seen := map[string]int{}
	for _, f := range fields {
		seen[f.Field]++
	}
	for _, name := range []string{"source", "event_type", "outcome", "location", "tier", "subject_label", "date"} {
		if seen[name] != 1 {
			t.Errorf("field %q reported %d times, want 1", name, seen[name])
		}
	}
}
