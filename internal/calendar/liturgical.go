package calendar

// Day summarizes a Gregorian date: its Julian equivalent, Julian Day
// Number and its place in the paschal cycle.
type Day struct {
	Date            Date    `json:"date"`
	JulianDate      Date    `json:"julian_date"`
	JulianDayNumber float64 `json:"julian_day_number"`
	Weekday         string  `json:"weekday"`
	Echo            int     `json:"echo"`
	PaschalYear     int     `json:"paschal_year"`
	DaysFromPascha  int     `json:"days_from_pascha"` // relative to Pascha of the same civil year
	WeekAfterPascha int     `json:"week_after_pascha"`
	Feast           *Feast  `json:"feast,omitempty"`
}

// Describe resolves a Gregorian date to its place in the calendar.
func Describe(date Date) Day {
	jdn := GregorianToJulianDayNumber(date)
	pascha := OrthodoxEasterGregorian(date.Year)

	day := Day{
		Date:            date,
		JulianDate:      JulianDayNumberToJulian(jdn),
		JulianDayNumber: jdn,
		Weekday:         DayName(date),
		Echo:            Echo(date),
		PaschalYear:     PaschalYear(date),
		DaysFromPascha:  int(jdn - GregorianToJulianDayNumber(pascha)),
		WeekAfterPascha: WeekAfterPascha(date),
	}

	if feast, ok := FeastOn(date); ok {
		day.Feast = &feast
	}

	return day
}

// DayName returns the day of week name (Sunday, Monday, etc.)
func DayName(date Date) string {
	return date.Weekday().String()
}
