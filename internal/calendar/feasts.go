package calendar

import "sort"

// Rite selects the paschal reckoning a feast is derived from.
type Rite string

const (
	RiteOrthodox Rite = "orthodox"
	RiteCatholic Rite = "catholic"
)

// Day offsets of the movable feasts from Easter Sunday.
const (
	// DaysFromPaschaToCleanMonday is the first day of Great Lent.
	DaysFromPaschaToCleanMonday = -48

	// DaysFromEasterToAshWednesday is 40 days of Lent plus the 6 Sundays
	// that are not counted.
	DaysFromEasterToAshWednesday = -46

	DaysFromPaschaToLazarusSaturday = -8
	DaysFromEasterToPalmSunday      = -7
	DaysFromEasterToGoodFriday      = -2
	DaysFromPaschaToBrightSaturday  = 6
	DaysFromPaschaToThomasSunday    = 7
	DaysFromPaschaToMidPentecost    = 24

	// DaysFromEasterToAscension always lands on a Thursday.
	DaysFromEasterToAscension = 39

	// DaysFromEasterToPentecost is 7 weeks.
	DaysFromEasterToPentecost = 49

	DaysFromPaschaToAllSaints = 56
)

// Feast is a movable feast on a specific Gregorian date.
type Feast struct {
	Key    string `json:"key"`
	Rite   Rite   `json:"rite"`
	Date   Date   `json:"date"`
	Offset int    `json:"offset"` // days from Easter Sunday
}

type feastRule struct {
	key    string
	offset int
}

var orthodoxFeasts = []feastRule{
	{"clean_monday", DaysFromPaschaToCleanMonday},
	{"lazarus_saturday", DaysFromPaschaToLazarusSaturday},
	{"palm_sunday", DaysFromEasterToPalmSunday},
	{"holy_friday", DaysFromEasterToGoodFriday},
	{"pascha", 0},
	{"bright_saturday", DaysFromPaschaToBrightSaturday},
	{"thomas_sunday", DaysFromPaschaToThomasSunday},
	{"mid_pentecost", DaysFromPaschaToMidPentecost},
	{"ascension", DaysFromEasterToAscension},
	{"pentecost", DaysFromEasterToPentecost},
	{"all_saints", DaysFromPaschaToAllSaints},
}

var catholicFeasts = []feastRule{
	{"ash_wednesday", DaysFromEasterToAshWednesday},
	{"palm_sunday", DaysFromEasterToPalmSunday},
	{"good_friday", DaysFromEasterToGoodFriday},
	{"easter", 0},
	{"ascension", DaysFromEasterToAscension},
	{"pentecost", DaysFromEasterToPentecost},
}

// MovableFeasts returns the Orthodox movable feasts of a year, ordered by
// date, as Gregorian dates.
func MovableFeasts(year int) []Feast {
	return buildFeasts(RiteOrthodox, OrthodoxEasterGregorian(year), orthodoxFeasts)
}

// CatholicMovableFeasts returns the Catholic movable feasts of a year,
// ordered by date.
func CatholicMovableFeasts(year int) []Feast {
	return buildFeasts(RiteCatholic, CatholicEasterGregorian(year), catholicFeasts)
}

func buildFeasts(rite Rite, easter Date, rules []feastRule) []Feast {
	feasts := make([]Feast, 0, len(rules))
	for _, r := range rules {
		feasts = append(feasts, Feast{
			Key:    r.key,
			Rite:   rite,
			Date:   easter.AddDays(r.offset),
			Offset: r.offset,
		})
	}
	sort.Slice(feasts, func(i, j int) bool {
		return feasts[i].Offset < feasts[j].Offset
	})
	return feasts
}

// FeastOn returns the Orthodox movable feast falling on a Gregorian date.
func FeastOn(date Date) (Feast, bool) {
	for _, f := range MovableFeasts(date.Year) {
		if f.Date.Equal(date) {
			return f, true
		}
	}
	return Feast{}, false
}

// PalmSunday returns the Orthodox Palm Sunday of a year.
func PalmSunday(year int) Date {
	return OrthodoxEasterGregorian(year).AddDays(DaysFromEasterToPalmSunday)
}

// Ascension returns the Orthodox Ascension of a year.
func Ascension(year int) Date {
	return OrthodoxEasterGregorian(year).AddDays(DaysFromEasterToAscension)
}

// Pentecost returns the Orthodox Pentecost of a year.
func Pentecost(year int) Date {
	return OrthodoxEasterGregorian(year).AddDays(DaysFromEasterToPentecost)
}

// AshWednesday returns the Catholic Ash Wednesday of a year.
func AshWednesday(year int) Date {
	return CatholicEasterGregorian(year).AddDays(DaysFromEasterToAshWednesday)
}
