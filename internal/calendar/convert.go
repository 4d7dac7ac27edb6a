package calendar

import (
	"math"
	"time"
)

// Julian and Gregorian calendar arithmetic after Fourmilab's calendar
// converter (https://www.fourmilab.ch/documents/calendar/) and Meeus,
// Astronomical Algorithms, chapter 7.
//
// Julian Day Numbers are float64 and carry the .5 offset: civil midnight
// is always at N + 0.5.

// GregorianEpoch is the JDN at which proleptic Gregorian day 0 begins.
const GregorianEpoch = 1721425.5

// gregorianEpochDay is floor(GregorianEpoch), so every midnight JDN is
// an integer day count plus 0.5.
const gregorianEpochDay = 1721425

// Day counts of the Gregorian cycles.
const (
	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461
	daysPerYear     = 365
)

// IsLeapGregorianYear reports whether year is a leap year in the Gregorian calendar.
func IsLeapGregorianYear(year int) bool {
	return year%4 == 0 && !(year%100 == 0 && year%400 != 0)
}

// IsLeapJulianYear reports whether year is a leap year in the Julian calendar.
//
// Years are in the common-era convention for non-positive values: -1 is
// 1 BCE, which is a leap year, and 0 does not exist.
func IsLeapJulianYear(year int) bool {
	if year > 0 {
		return floorMod(year, 4) == 0
	}
	return floorMod(year, 4) == 3
}

// GregorianToJulianDayNumber returns the JDN of midnight on the Gregorian date d.
func GregorianToJulianDayNumber(d Date) float64 {
	return float64(gregorianDay(d.Year, int(d.Month), d.Day)) + 0.5
}

// gregorianDay is GregorianToJulianDayNumber without the .5 offset.
func gregorianDay(year, month, day int) int {
	y := year - 1

	adj := 0
	if month > 2 {
		adj = -2
		if IsLeapGregorianYear(year) {
			adj = -1
		}
	}

	return gregorianEpochDay - 1 +
		daysPerYear*y +
		floorDiv(y, 4) -
		floorDiv(y, 100) +
		floorDiv(y, 400) +
		floorDiv(367*month-362, 12) +
		adj +
		day
}

// JulianToJulianDayNumber returns the JDN of midnight on the Julian date d.
// Non-positive years are read in the common-era convention (no year 0).
func JulianToJulianDayNumber(d Date) float64 {
	year := d.Year
	month := int(d.Month)

	// Shift to zero-based years: 1 BCE becomes year 0.
	if year < 1 {
		year++
	}

	// January and February count as months 13 and 14 of the previous year.
	if month <= 2 {
		year--
		month += 12
	}

	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(d.Day) - 1524.5
}

// JulianDayNumberToGregorian returns the Gregorian date containing jdn.
func JulianDayNumberToGregorian(jdn float64) Date {
	wjd := int(math.Floor(jdn - 0.5))
	depoch := wjd - gregorianEpochDay

	quadricent := floorDiv(depoch, daysPer400Years)
	dqc := floorMod(depoch, daysPer400Years)
	cent := floorDiv(dqc, daysPer100Years)
	dcent := floorMod(dqc, daysPer100Years)
	quad := floorDiv(dcent, daysPer4Years)
	dquad := floorMod(dcent, daysPer4Years)
	yindex := floorDiv(dquad, daysPerYear)

	year := quadricent*400 + cent*100 + quad*4 + yindex
	// A cent or yindex of 4 is the last day of a leap cycle, which
	// still belongs to the year just counted.
	if cent != 4 && yindex != 4 {
		year++
	}

	yearday := wjd - gregorianDay(year, 1, 1)

	leapadj := 0
	if wjd >= gregorianDay(year, 3, 1) {
		leapadj = 2
		if IsLeapGregorianYear(year) {
			leapadj = 1
		}
	}

	month := floorDiv((yearday+leapadj)*12+373, 367)
	day := wjd - gregorianDay(year, month, 1) + 1

	return Date{Year: year, Month: time.Month(month), Day: day}
}

// JulianDayNumberToJulian returns the Julian date containing jdn. Years
// before 1 CE are returned in the common-era convention (no year 0).
func JulianDayNumberToJulian(jdn float64) Date {
	z := math.Floor(jdn + 0.5)

	b := z + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	month := int(e) - 13
	if e < 14 {
		month = int(e) - 1
	}

	year := int(c) - 4715
	if month > 2 {
		year = int(c) - 4716
	}

	day := int(b - d - math.Floor(30.6001*e))

	// Back from zero-based years: year 0 is 1 BCE.
	if year < 1 {
		year--
	}

	return Date{Year: year, Month: time.Month(month), Day: day}
}

// GregorianToJulian converts a Gregorian date to the Julian calendar.
func GregorianToJulian(d Date) Date {
	return JulianDayNumberToJulian(GregorianToJulianDayNumber(d))
}

// JulianToGregorian converts a Julian date to the Gregorian calendar.
func JulianToGregorian(d Date) Date {
	return JulianDayNumberToGregorian(JulianToJulianDayNumber(d))
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the remainder matching floorDiv; its sign follows b.
func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
