// Package format contains the functions turning stored values into the strings shown on the pages
package format

import (
	"html/template"
	"time"

	"github.com/derWhity/fyyur/internal/repos"
)

const (
	// StyleFull renders dates like "Tuesday May, 21, 2019 at 9:30PM"
	StyleFull = "full"
	// StyleMedium renders dates like "Tue 05, 21, 2019 9:30PM"
	StyleMedium = "medium"

	layoutFull   = "Monday January, 2, 2006 at 3:04PM"
	layoutMedium = "Mon 01, 02, 2006 3:04PM"
)

// DateTime renders t in the given style. Unknown styles fall back to StyleMedium.
// Go's time layouts always use English names, so the output does not depend on the system locale.
func DateTime(t time.Time, style string) string {
	if style == StyleFull {
		return t.Format(layoutFull)
	}
	return t.Format(layoutMedium)
}

// DateTimeString parses a timestamp in storage format and renders it in the given style
func DateTimeString(raw, style string) (string, error) {
	t, err := repos.ParseTimestamp(raw)
	if err != nil {
		return "", err
	}
	return DateTime(t, style), nil
}

// FuncMap returns the template functions of this package
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"datetime": DateTime,
	}
}
