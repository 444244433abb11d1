package site

import (
	"strings"
	"time"
)

// DateConfig mirrors the locale options used to display post dates.
// Supported values: Weekday "long" or "short"; Month "long", "short",
// "numeric" or "2-digit"; Day and Year "numeric" or "2-digit". Empty
// fields are omitted from the output.
type DateConfig struct {
	Locale  string
	Year    string
	Weekday string
	Month   string
	Day     string
}

var date = DateConfig{
	Locale:  "en-US",
	Year:    "2-digit",
	Weekday: "long",
	Month:   "short",
	Day:     "numeric",
}

// Date returns the date display configuration.
func Date() DateConfig {
	return date
}

// Layout converts the options into a Go time layout using en-US ordering,
// e.g. "Monday, Jan 2, 06" or "Mon, 1/2/2006".
func (d DateConfig) Layout() string {
	var weekday, month, day, year string

	switch d.Weekday {
	case "long":
		weekday = "Monday"
	case "short":
		weekday = "Mon"
	}

	switch d.Month {
	case "long":
		month = "January"
	case "short":
		month = "Jan"
	case "numeric":
		month = "1"
	case "2-digit":
		month = "01"
	}

	switch d.Day {
	case "numeric":
		day = "2"
	case "2-digit":
		day = "02"
	}

	switch d.Year {
	case "numeric":
		year = "2006"
	case "2-digit":
		year = "06"
	}

	var datePart string
	if d.Month == "numeric" || d.Month == "2-digit" {
		datePart = joinNonEmpty("/", month, day, year)
	} else {
		datePart = joinNonEmpty(", ", joinNonEmpty(" ", month, day), year)
	}

	return joinNonEmpty(", ", weekday, datePart)
}

// Format renders t with the configured options.
func (d DateConfig) Format(t time.Time) string {
	return t.Format(d.Layout())
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
