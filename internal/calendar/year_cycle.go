package calendar

// PaschalYear returns the year whose Pascha opened the Echo cycle that
// contains the given Gregorian date.
//
// The cycle does not follow the civil year. It begins with Pascha, so a
// date before Pascha of its calendar year still belongs to the cycle that
// began with the previous year's Pascha.
//
// Examples:
//   - 2023-04-16 (Pascha 2023): 2023
//   - 2023-02-01 (before Pascha 2023): 2022
//   - 2023-12-25: 2023
func PaschalYear(date Date) int {
	if date.Before(OrthodoxEasterGregorian(date.Year)) {
		return date.Year - 1
	}
	return date.Year
}

// WeekAfterPascha returns how many whole weeks have passed since Thomas
// Sunday of the date's paschal year, counting Thomas Sunday's week as 1.
// Bright Week returns 0.
func WeekAfterPascha(date Date) int {
	start := OrthodoxEasterGregorian(PaschalYear(date)).AddDays(daysToEchoStart)
	if date.Before(start) {
		return 0
	}
	return daysBetween(start, date)/daysPerWeek + 1
}
