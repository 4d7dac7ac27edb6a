package calendar

import "time"

// Echo cycle constants.
const (
	// EchoCount is the number of tones in the cycle.
	EchoCount = 8

	// BrightSaturdayEcho is the fixed tone of the Saturday of Bright Week.
	BrightSaturdayEcho = 8

	// daysToEchoStart is the offset from Pascha to the first cyclic week
	// (Thomas Sunday).
	daysToEchoStart = 7

	daysPerWeek = 7
)

// Echo calculates the Echo (tone, 1 to 8) for a Gregorian date.
//
// Bright Week is not cyclic: Pascha is tone 1, each following day counts
// up by one, and Bright Saturday is always tone 8. From Thomas Sunday the
// tones advance once per week and repeat every eight weeks. Dates before
// Thomas Sunday of their civil year continue the cycle started by the
// previous year's Pascha.
func Echo(date Date) int {
	easter := OrthodoxEasterGregorian(date.Year)
	echoStart := easter.AddDays(daysToEchoStart)

	if date.Equal(easter.AddDays(6)) {
		return BrightSaturdayEcho
	}

	sinceEaster := daysBetween(easter, date)
	if !date.Before(easter) && sinceEaster <= 6 {
		return sinceEaster + 1
	}

	if date.Before(echoStart) {
		echoStart = OrthodoxEasterGregorian(date.Year - 1).AddDays(daysToEchoStart)
	}

	weeks := daysBetween(date, echoStart) / daysPerWeek
	return weeks%EchoCount + 1
}

// EchoAt calculates the Echo for the UTC calendar date of t.
func EchoAt(t time.Time) int {
	return Echo(DateOf(t))
}

// daysBetween returns the absolute number of days between two Gregorian dates.
func daysBetween(a, b Date) int {
	diff := int(GregorianToJulianDayNumber(b) - GregorianToJulianDayNumber(a))
	if diff < 0 {
		return -diff
	}
	return diff
}
