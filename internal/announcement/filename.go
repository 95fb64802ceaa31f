package announcement

import (
	"strconv"
	"strings"

	apperr "github.com/youruser/comunicado/internal/errors"
)

// FileExt is the extension of every rendered announcement.
const FileExt = ".jpeg"

// CompactDate reorders "DD/MM/YYYY" into "YYYYMMDD". The groups are moved
// as-is; calendar checks belong to request validation.
func CompactDate(date string) (string, error) {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return "", apperr.New(apperr.ErrCodeInvalidFormat, "date %q is not DD/MM/YYYY", date)
	}
	day, month, year := parts[0], parts[1], parts[2]
	return year + month + day, nil
}

// BuildFilename derives "{YYYYMMDD}_{TOKEN}.jpeg" for req.
// When the display name has no letters or digits left after normalization,
// the subject number stands in for the token.
func BuildFilename(req Request) (string, error) {
	subject, err := ExtractSubject(req)
	if err != nil {
		return "", err
	}
	date, err := CompactDate(req.Date)
	if err != nil {
		return "", err
	}

	token := NormalizeToken(subject.DisplayName)
	if token == "" {
		token = strconv.Itoa(subject.ID)
	}
	return date + "_" + token + FileExt, nil
}
