package database

import (
	"time"

	"github.com/zapponejosh/paschalion/internal/calendar"
)

// PaschalionEntry is one row of a paschalion table: the Easter dates of a
// single year.
type PaschalionEntry struct {
	Year              int           `json:"year"`
	OrthodoxJulian    calendar.Date `json:"orthodox_julian"`
	OrthodoxGregorian calendar.Date `json:"orthodox_gregorian"`
	CatholicGregorian calendar.Date `json:"catholic_gregorian"`
	GeneratedAt       time.Time     `json:"generated_at"`
}

// NewPaschalionEntry computes the entry for a year.
func NewPaschalionEntry(year int, now time.Time) PaschalionEntry {
	return PaschalionEntry{
		Year:              year,
		OrthodoxJulian:    calendar.OrthodoxEasterJulian(year),
		OrthodoxGregorian: calendar.OrthodoxEasterGregorian(year),
		CatholicGregorian: calendar.CatholicEasterGregorian(year),
		GeneratedAt:       now.UTC().Truncate(time.Second),
	}
}

// GeneratePaschalion computes entries for every year in [from, to].
func GeneratePaschalion(from, to int, now time.Time) []PaschalionEntry {
	if to < from {
		return nil
	}
	entries := make([]PaschalionEntry, 0, to-from+1)
	for year := from; year <= to; year++ {
		entries = append(entries, NewPaschalionEntry(year, now))
	}
	return entries
}

// PaschalionStats summarizes the stored table.
type PaschalionStats struct {
	Rows      int  `json:"rows"`
	FirstYear *int `json:"first_year,omitempty"`
	LastYear  *int `json:"last_year,omitempty"`
}
