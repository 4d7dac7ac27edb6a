package calendar

import "time"

// OrthodoxEasterJulian calculates the date of Orthodox Easter for a given
// year as a date in the Julian calendar.
//
// The calculation follows Meeus's Julian algorithm:
// https://en.wikipedia.org/wiki/Date_of_Easter#Meeus's_Julian_algorithm
func OrthodoxEasterJulian(year int) Date {
	a := year % 4
	b := year % 7
	c := year % 19
	d := (19*c + 15) % 30
	e := (2*a + 4*b - d + 34) % 7
	month := (d + e + 114) / 31
	day := ((d + e + 114) % 31) + 1

	return Date{Year: year, Month: time.Month(month), Day: day}
}

// OrthodoxEasterGregorian calculates the date of Orthodox Easter for a
// given year as observed civilly in the Gregorian calendar.
func OrthodoxEasterGregorian(year int) Date {
	return JulianToGregorian(OrthodoxEasterJulian(year))
}

// CatholicEasterGregorian calculates the date of Catholic Easter for a
// given year in the Gregorian calendar.
//
// The calculation follows the corrected Meeus/Jones/Butcher (anonymous
// Gregorian) algorithm:
// https://en.wikipedia.org/wiki/Date_of_Easter#Anonymous_Gregorian_algorithm
func CatholicEasterGregorian(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	g := (8*b + 13) / 25
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 19*l) / 433
	n := (h + l - 7*m + 90) / 25
	p := (h + l - 7*m + 33*n + 19) % 32

	return Date{Year: year, Month: time.Month(n), Day: p}
}
