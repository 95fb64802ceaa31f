package announcement

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	apperr "github.com/youruser/comunicado/internal/errors"
)

// requiredColumns are the CSV header names, one per Request field.
var requiredColumns = []string{
	"source", "event_type", "subject_label", "outcome", "location", "tier", "date",
}

// LoadRequestsCSV reads announcement requests from a CSV file.
// The header row names the columns (any order, extra columns ignored).
func LoadRequestsCSV(path string) ([]Request, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeNotFound, err, "open %s", path)
	}
	defer fp.Close()

	reqs, err := ReadRequestsCSV(fp)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "loading %s", path)
	}
	return reqs, nil
}

// ReadRequestsCSV is LoadRequestsCSV over an arbitrary reader.
func ReadRequestsCSV(r io.Reader) ([]Request, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "csv has no header")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "csv is missing column %q", name)
		}
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Request{}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		out = append(out, Request{
			Source:       get(row, "source"),
			EventType:    get(row, "event_type"),
			SubjectLabel: get(row, "subject_label"),
			Outcome:      get(row, "outcome"),
			Location:     get(row, "location"),
			Tier:         get(row, "tier"),
			Date:         get(row, "date"),
		})
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
